package revision

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/metrics"
)

var buildTime = time.Date(2026, time.October, 19, 14, 0, 0, 0, time.Local)

func TestResolve(t *testing.T) {
	q := &fakeQuerier{hash: "abc1234", date: "Mon Jan 16 10:20:30 2023"}
	r := NewResolver(q, 2020, WithClock(fixedClock(buildTime)))

	info := r.Resolve(context.Background())

	assert.Equal(t, 1, q.hashRuns)
	assert.Equal(t, 1, q.dateRuns)
	assert.Equal(t, Some("abc1234"), info.Hash())
	assert.Equal(t, Some("January 16, 2023"), info.FormattedDate())
	assert.Equal(t, Some("2023"), info.CommitYear())
	assert.Equal(t, Some("2020-2023"), info.Copyright())
	assert.Equal(t, "October 19, 2026", info.BuildDate())
	assert.Equal(t, 2020, info.StartYear())
	assert.True(t, info.Complete())
	assert.Empty(t, info.Warnings())

	ct, ok := info.CommitTime().Get()
	require.True(t, ok)
	assert.Equal(t, 2023, ct.Year())
}

func TestResolve_ToolMissing(t *testing.T) {
	var logs bytes.Buffer
	q := &fakeQuerier{hashErr: errNoGit, dateErr: errNoGit}
	r := NewResolver(q, 2020,
		WithClock(fixedClock(buildTime)),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	info := r.Resolve(context.Background())

	assert.False(t, info.Hash().IsPresent())
	assert.False(t, info.CommitTime().IsPresent())
	assert.False(t, info.FormattedDate().IsPresent())
	assert.False(t, info.CommitYear().IsPresent())
	assert.False(t, info.Copyright().IsPresent())
	assert.Equal(t, "October 19, 2026", info.BuildDate())
	assert.False(t, info.Complete())

	warnings := info.Warnings()
	require.Len(t, warnings, 3)
	assert.ErrorIs(t, warnings[0], errors.ErrToolInvocation)
	assert.ErrorIs(t, warnings[1], errors.ErrToolInvocation)
	assert.ErrorIs(t, warnings[2], errors.ErrUndefinedYear)
	for _, w := range warnings {
		classified, ok := errors.AsClassified(w)
		require.True(t, ok)
		assert.Equal(t, errors.SeverityWarning, classified.Severity())
	}
	assert.True(t, errors.HasCategory(warnings[0], errors.CategoryVCS))
	assert.True(t, errors.HasCategory(warnings[2], errors.CategoryRevision))

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Could not resolve commit hash")
	assert.Contains(t, logs.String(), "Could not derive copyright range")
}

func TestResolve_HashOnlyFails(t *testing.T) {
	q := &fakeQuerier{hashErr: errNoCommit, date: "Sun Mar 01 12:34:56 2020"}
	info := NewResolver(q, 2020, WithClock(fixedClock(buildTime))).Resolve(context.Background())

	assert.False(t, info.Hash().IsPresent())
	assert.Equal(t, Some("2020"), info.Copyright())
	require.Len(t, info.Warnings(), 1)
	assert.ErrorIs(t, info.Warnings()[0], errors.ErrNoOutput)
}

func TestResolve_UnparseableDate(t *testing.T) {
	q := &fakeQuerier{hash: "abc1234", date: "yesterday"}
	info := NewResolver(q, 2020, WithClock(fixedClock(buildTime))).Resolve(context.Background())

	assert.True(t, info.Hash().IsPresent())
	assert.False(t, info.FormattedDate().IsPresent())
	warnings := info.Warnings()
	require.Len(t, warnings, 2)
	assert.True(t, errors.HasCategory(warnings[0], errors.CategoryRevision))
}

func TestResolve_WarningsAreCopied(t *testing.T) {
	q := &fakeQuerier{hashErr: errNoGit, date: "Sun Mar 01 12:34:56 2020"}
	info := NewResolver(q, 2020).Resolve(context.Background())

	w := info.Warnings()
	w[0] = nil
	assert.NotNil(t, info.Warnings()[0])
}

func TestResolveBuildTime(t *testing.T) {
	q := &fakeQuerier{}
	r := NewResolver(q, 2020, WithClock(fixedClock(buildTime)))
	assert.Equal(t, "October 19, 2026", r.ResolveBuildTime())
	assert.Zero(t, q.hashRuns+q.dateRuns)
}

func TestResolve_RecordsMetrics(t *testing.T) {
	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
	q := &fakeQuerier{hash: "abc1234", dateErr: errNoCommit}
	NewResolver(q, 2020, WithRecorder(rec)).Resolve(context.Background())

	out, err := testutil.GatherAndCount(rec.Registry(), "docstamp_vcs_query_results_total")
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}
