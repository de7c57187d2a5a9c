package revision

import "time"

// Info is the revision metadata of one build. It is immutable; build a new
// one for every build.
type Info struct {
	hash          Optional[string]
	commitTime    Optional[time.Time]
	formattedDate Optional[string]
	commitYear    Optional[string]
	buildDate     string
	copyright     Optional[string]
	startYear     int
	warnings      []error
}

// Hash is the short hash of the latest commit.
func (i Info) Hash() Optional[string] { return i.hash }

// CommitTime is the latest commit's author date.
func (i Info) CommitTime() Optional[time.Time] { return i.commitTime }

// FormattedDate is CommitTime rendered with LongDateLayout.
func (i Info) FormattedDate() Optional[string] { return i.formattedDate }

// CommitYear is the four-digit year of CommitTime.
func (i Info) CommitYear() Optional[string] { return i.commitYear }

// BuildDate is the clock reading at resolve time rendered with LongDateLayout.
func (i Info) BuildDate() string { return i.buildDate }

// Copyright is the copyright year range; absent when CommitYear is.
func (i Info) Copyright() Optional[string] { return i.copyright }

// StartYear is the fixed first year of the copyright range.
func (i Info) StartYear() int { return i.startYear }

// Warnings lists the resolution failures, in the order they happened.
func (i Info) Warnings() []error {
	out := make([]error, len(i.warnings))
	copy(out, i.warnings)
	return out
}

// Complete reports whether every value resolved.
func (i Info) Complete() bool { return len(i.warnings) == 0 }
