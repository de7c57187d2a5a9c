package revision

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/git"
)

// LongDateLayout renders dates as "March 01, 2020".
const LongDateLayout = "January 02, 2006"

// YearLayout renders the four-digit year.
const YearLayout = "2006"

// git pads the day with a zero; other producers of the same asctime-like
// format pad with a space.
var commitDateLayouts = []string{
	git.CommitDateLayout,
	"Mon Jan _2 15:04:05 2006",
}

// CommitTime is a parsed commit date with its derived renderings.
type CommitTime struct {
	Time          time.Time
	FormattedDate string
	Year          string
}

// ParseCommitTime parses a date printed in git.CommitDateFormat. It is pure:
// the same input always yields the same FormattedDate and Year. The wall
// clock reading is kept as printed; no zone conversion happens.
func ParseCommitTime(raw string) (CommitTime, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return CommitTime{}, fmt.Errorf("empty commit date")
	}
	var firstErr error
	for _, layout := range commitDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewCommitTime(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return CommitTime{}, fmt.Errorf("parse commit date %q: %w", s, firstErr)
}

// NewCommitTime derives the renderings of t.
func NewCommitTime(t time.Time) CommitTime {
	return CommitTime{
		Time:          t,
		FormattedDate: t.Format(LongDateLayout),
		Year:          t.Format(YearLayout),
	}
}

// FormatLongDate renders t like FormattedDate.
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}
