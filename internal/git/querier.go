package git

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/foundation/normalization"
)

// CommitDateFormat is the strftime format requested from git for the author date.
const CommitDateFormat = "%a %b %d %H:%M:%S %Y"

// CommitDateLayout is CommitDateFormat expressed as a Go time layout.
const CommitDateLayout = "Mon Jan 02 15:04:05 2006"

// ShortHashLength is the abbreviation length used when the backend has to
// shorten a full object name itself.
const ShortHashLength = 7

// DefaultTimeout bounds a single query.
const DefaultTimeout = 10 * time.Second

// Query operation names, used in logs, metrics and error context.
const (
	OpShortHash  = "short_hash"
	OpCommitDate = "commit_date"
)

// Querier answers the two revision questions. Implementations run one query
// per call and never retry.
type Querier interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// ShortHash returns the abbreviated hash of the most recent commit.
	ShortHash(ctx context.Context) (string, error)
	// CommitDate returns the most recent commit's author date rendered with CommitDateFormat.
	CommitDate(ctx context.Context) (string, error)
}

// Backend selects a Querier implementation.
type Backend string

const (
	BackendExec  Backend = "exec"
	BackendGoGit Backend = "gogit"
)

var backendNormalizer = normalization.NewNormalizer(map[string]Backend{
	"exec":   BackendExec,
	"gogit":  BackendGoGit,
	"go-git": BackendGoGit,
}, BackendExec)

// ValidBackends lists the accepted backend spellings.
func ValidBackends() []string {
	return backendNormalizer.ValidKeys()
}

// ParseBackend normalizes a configured backend name. Empty input selects exec.
func ParseBackend(raw string) (Backend, error) {
	return backendNormalizer.NormalizeWithError(raw)
}

// Options configures a Querier.
type Options struct {
	// Dir is the directory queries run in; any directory inside the work tree works.
	Dir string
	// Binary is the git executable for the exec backend (default "git").
	Binary string
	// Timeout bounds each query (default DefaultTimeout).
	Timeout time.Duration
}

// New constructs the Querier for backend.
func New(backend Backend, opts Options) (Querier, error) {
	switch backend {
	case BackendExec, "":
		return NewExecGit(opts), nil
	case BackendGoGit:
		return NewGoGit(opts), nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}
