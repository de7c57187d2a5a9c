package revision

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
)

type fakeQuerier struct {
	hash     string
	hashErr  error
	date     string
	dateErr  error
	hashRuns int
	dateRuns int
}

func (f *fakeQuerier) Name() string { return "fake" }

func (f *fakeQuerier) ShortHash(context.Context) (string, error) {
	f.hashRuns++
	return f.hash, f.hashErr
}

func (f *fakeQuerier) CommitDate(context.Context) (string, error) {
	f.dateRuns++
	return f.date, f.dateErr
}

func fixedClock(t time.Time) Clock { return func() time.Time { return t } }

var (
	errNoGit    = errors.ToolInvocationError("git query could not run").Build()
	errNoCommit = errors.NoOutputError("git query produced no output").Build()
)
