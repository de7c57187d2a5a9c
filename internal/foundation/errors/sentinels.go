package errors

import stderrors "errors"

// Sentinels for the failure kinds callers branch on. Classified errors built
// WithSentinel match them through errors.Is.
var (
	// ErrToolInvocation means the version-control process could not be run:
	// binary missing, not a repository, or the bounded wait expired.
	ErrToolInvocation = stderrors.New("version-control tool invocation failed")

	// ErrNoOutput means the version-control process ran but printed nothing.
	ErrNoOutput = stderrors.New("version-control tool produced no output")

	// ErrUndefinedYear means a copyright range was requested without a usable commit year.
	ErrUndefinedYear = stderrors.New("commit year is undefined")
)
