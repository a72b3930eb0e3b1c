package slack

import (
	"fmt"

	"github.com/lborup/dinkhouse/internal/rating"
	"github.com/lborup/dinkhouse/internal/snapshot"
	"github.com/slack-go/slack"
)

const leaderboardTop = 5

// formatRankingsUpdate creates the Slack message announcing a new snapshot
// using Block Kit.
func (s *Notifier) formatRankingsUpdate(doc *snapshot.Document) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Rankings updated! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = appendLeaderboard(blocks, "Singles", doc.Singles)
	blocks = appendLeaderboard(blocks, "Doubles (Teams)", doc.DoublesTeams)
	blocks = appendLeaderboard(blocks, "Doubles (Players)", doc.DoublesIndividual)

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Generated at %s", doc.GeneratedAt), true, false)))

	return slack.NewBlockMessage(blocks...)
}

func appendLeaderboard(blocks []slack.Block, title string, entries []rating.Entry) []slack.Block {
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s*", title), false, false), nil, nil))

	if len(entries) == 0 {
		return append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "No matches yet. Go play some!", true, false), nil, nil))
	}

	for _, entry := range entries {
		if entry.Rank > leaderboardTop {
			break
		}
		var medal string
		switch entry.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		name := entry.Player
		if name == "" {
			name = entry.Team
		}
		entryText := fmt.Sprintf("%d. %s %s\n> Rating: %.1f | W-L: %d-%d | Win %%: %.1f",
			entry.Rank,
			medal,
			name,
			entry.Rating,
			entry.Wins,
			entry.Losses,
			entry.WinPct,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", entryText, true, false), nil, nil))
	}
	return blocks
}
