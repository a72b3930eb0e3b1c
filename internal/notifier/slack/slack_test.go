package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/lborup/dinkhouse/internal/metrics"
	"github.com/lborup/dinkhouse/internal/rating"
	"github.com/lborup/dinkhouse/internal/snapshot"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sampleDoc() *snapshot.Document {
	return &snapshot.Document{
		GeneratedAt: "2024-05-01T10:00:00Z",
		Singles: []rating.Entry{
			{Rank: 1, Player: "Alice", Rating: 1216.0, Wins: 1, WinPct: 100.0},
			{Rank: 2, Player: "Bob", Rating: 1184.0, Losses: 1},
		},
		DoublesTeams:      []rating.Entry{{Rank: 1, Team: "Ann & Bob", Rating: 1216.0, Wins: 1, WinPct: 100.0}},
		DoublesIndividual: []rating.Entry{},
	}
}

func TestSendRankingsUpdate_DryRun(t *testing.T) {
	metr := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notif := NewNotifierWithAPI(nil, "C123", metr)

	err := notif.SendRankingsUpdate(sampleDoc(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metr.NotificationsSentCount)
}

func TestSendRankingsUpdate_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metr := metrics.NewMock()
	notif := NewNotifierWithAPI(api, "C123", metr)

	err := notif.SendRankingsUpdate(sampleDoc(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metr.NotificationsSentCount)
	assert.Equal(t, 0, metr.NotificationsFailedCount)
}

func TestSendRankingsUpdate_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metr := metrics.NewMock()
	notif := NewNotifierWithAPI(api, "C123", metr)

	err := notif.SendRankingsUpdate(sampleDoc(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metr.NotificationsSentCount)
	assert.Equal(t, 1, metr.NotificationsFailedCount)
}

func TestFormatRankingsUpdateHandlesEmptyPools(t *testing.T) {
	notif := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	doc := &snapshot.Document{GeneratedAt: "2024-05-01T10:00:00Z"}
	msg := notif.formatRankingsUpdate(doc)
	assert.NotEmpty(t, msg.Blocks.BlockSet)
}
