package metrics

import "time"

// ResultLabel enumerates query result categories for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultNoOutput  ResultLabel = "no_output"
	ResultToolError ResultLabel = "tool_error"
)

// Recorder defines observability hooks for revision resolution and rendering.
type Recorder interface {
	ObserveQueryDuration(backend, op string, d time.Duration)
	IncQueryResult(backend, op string, result ResultLabel)
	IncFallback(key string)
	IncRender(format string, success bool)
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveQueryDuration(string, string, time.Duration) {}
func (NoopRecorder) IncQueryResult(string, string, ResultLabel)         {}
func (NoopRecorder) IncFallback(string)                                 {}
func (NoopRecorder) IncRender(string, bool)                             {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                 {}
