package match

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Category discriminates the two kinds of matches the league plays.
type Category string

const (
	Singles Category = "singles"
	Doubles Category = "doubles"
)

// Categories lists every category in processing order.
var Categories = []Category{Singles, Doubles}

// TeamSeparator joins sorted player names into a canonical team identifier.
const TeamSeparator = " & "

// Record is a single played match, normalized at parse time: whichever
// score schema the document used, Side1Games/Side2Games hold the summed
// games per side. Records are read-only input and never mutated.
type Record struct {
	Date     string
	Category Category

	// Singles fields.
	Players []string
	Winner  string

	// Doubles fields. WinnerTeam is 1 or 2.
	Team1      []string
	Team2      []string
	WinnerTeam int

	Side1Games int
	Side2Games int
}

// TeamID derives the canonical identifier for a doubles pairing: member
// names sorted, then joined. Two documents naming the same pair in either
// order resolve to the same team entity.
func TeamID(players []string) string {
	sorted := make([]string, len(players))
	copy(sorted, players)
	sort.Strings(sorted)
	return strings.Join(sorted, TeamSeparator)
}

// Handle identifies one stored match record. Date is parsed from the
// YYYY-MM-DD prefix of the key's base name; keys that do not carry a valid
// date get the zero time and therefore sort first, consistently across runs.
type Handle struct {
	Key     string
	Date    time.Time
	ModTime time.Time
}

// ParseError reports a malformed or schema-violating match document. It is
// recovered locally: the record is skipped and the run continues.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a document whose fields are present but
// semantically invalid, e.g. a winner naming neither player. Recovered
// locally like ParseError.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}
