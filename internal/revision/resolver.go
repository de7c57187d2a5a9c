package revision

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/git"
	"git.home.luguber.info/inful/docstamp/internal/logfields"
	"git.home.luguber.info/inful/docstamp/internal/metrics"
)

// Clock returns the current time.
type Clock func() time.Time

// Resolver produces Info from a git.Querier and a clock.
type Resolver struct {
	querier   git.Querier
	startYear int
	clock     Clock
	logger    *slog.Logger
	recorder  metrics.Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock replaces time.Now.
func WithClock(c Clock) Option { return func(r *Resolver) { r.clock = c } }

// WithLogger sets the logger for resolution warnings.
func WithLogger(l *slog.Logger) Option { return func(r *Resolver) { r.logger = l } }

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option { return func(r *Resolver) { r.recorder = rec } }

// NewResolver creates a Resolver whose copyright range starts at startYear.
func NewResolver(q git.Querier, startYear int, opts ...Option) *Resolver {
	r := &Resolver{
		querier:   q,
		startYear: startYear,
		clock:     time.Now,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveHash asks for the short hash of the latest commit.
func (r *Resolver) ResolveHash(ctx context.Context) (string, error) {
	return r.query(ctx, git.OpShortHash, r.querier.ShortHash)
}

// ResolveCommitTime asks for the latest commit's author date and parses it.
func (r *Resolver) ResolveCommitTime(ctx context.Context) (CommitTime, error) {
	raw, err := r.query(ctx, git.OpCommitDate, r.querier.CommitDate)
	if err != nil {
		return CommitTime{}, err
	}
	ct, err := ParseCommitTime(raw)
	if err != nil {
		return CommitTime{}, errors.WrapError(err, errors.CategoryRevision, "unparseable commit date").
			WithContext("raw", raw).
			Build()
	}
	return ct, nil
}

// ResolveBuildTime renders the current clock reading.
func (r *Resolver) ResolveBuildTime() string {
	return FormatLongDate(r.clock())
}

// Resolve runs the whole sequence once: hash, commit date, build date, copyright.
// It never fails; anything unresolved stays absent on Info, is logged at warn
// level and is listed in Info.Warnings.
func (r *Resolver) Resolve(ctx context.Context) Info {
	info := Info{startYear: r.startYear}

	if hash, err := r.ResolveHash(ctx); err != nil {
		info.warnings = append(info.warnings, r.warn("Could not resolve commit hash", git.OpShortHash, err))
	} else {
		info.hash = Some(hash)
	}

	if ct, err := r.ResolveCommitTime(ctx); err != nil {
		info.warnings = append(info.warnings, r.warn("Could not resolve commit date", git.OpCommitDate, err))
	} else {
		info.commitTime = Some(ct.Time)
		info.formattedDate = Some(ct.FormattedDate)
		info.commitYear = Some(ct.Year)
	}

	info.buildDate = r.ResolveBuildTime()

	if rng, err := CopyrightRange(info.commitYear, r.startYear); err != nil {
		info.warnings = append(info.warnings, r.warn("Could not derive copyright range", "copyright", err))
	} else {
		info.copyright = Some(rng)
	}

	return info
}

func (r *Resolver) query(ctx context.Context, op string, fn func(context.Context) (string, error)) (string, error) {
	backend := r.querier.Name()
	start := time.Now()
	out, err := fn(ctx)
	r.recorder.ObserveQueryDuration(backend, op, time.Since(start))

	switch {
	case err == nil:
		r.recorder.IncQueryResult(backend, op, metrics.ResultSuccess)
		r.logger.Debug("Resolved revision value", logfields.Backend(backend), logfields.Op(op), logfields.Since(start))
	case stderrors.Is(err, errors.ErrNoOutput):
		r.recorder.IncQueryResult(backend, op, metrics.ResultNoOutput)
	default:
		r.recorder.IncQueryResult(backend, op, metrics.ResultToolError)
	}
	return out, err
}

// warn logs err and returns it demoted to a warning-severity error in its
// original category; the cause chain keeps the sentinels reachable.
func (r *Resolver) warn(msg, op string, err error) error {
	r.logger.Warn(msg, logfields.Backend(r.querier.Name()), logfields.Op(op), logfields.Error(err))
	return errors.WrapError(err, errors.GetCategory(err), msg).
		WithContext("op", op).
		Warning().
		Build()
}
