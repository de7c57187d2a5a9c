package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	queryDuration *prom.HistogramVec
	queryResults  *prom.CounterVec
	fallbacks     *prom.CounterVec
	renders       *prom.CounterVec
	buildDuration prom.Histogram
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		queryDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docstamp",
			Name:      "vcs_query_duration_seconds",
			Help:      "Duration of version-control queries",
			Buckets:   prom.DefBuckets,
		}, []string{"backend", "op"}),
		queryResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docstamp",
			Name:      "vcs_query_results_total",
			Help:      "Version-control query results by outcome",
		}, []string{"backend", "op", "result"}),
		fallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docstamp",
			Name:      "substitution_fallbacks_total",
			Help:      "Substitutions rendered with a fallback value",
		}, []string{"key"}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docstamp",
			Name:      "renders_total",
			Help:      "Rendered documents by format and success",
		}, []string{"format", "success"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docstamp",
			Name:      "build_duration_seconds",
			Help:      "Total stamp build duration",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.queryDuration, pr.queryResults, pr.fallbacks, pr.renders, pr.buildDuration)
	return pr
}

// Registry returns the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveQueryDuration(backend, op string, d time.Duration) {
	p.queryDuration.WithLabelValues(backend, op).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncQueryResult(backend, op string, result ResultLabel) {
	p.queryResults.WithLabelValues(backend, op, string(result)).Inc()
}

func (p *PrometheusRecorder) IncFallback(key string) {
	p.fallbacks.WithLabelValues(key).Inc()
}

func (p *PrometheusRecorder) IncRender(format string, success bool) {
	p.renders.WithLabelValues(format, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}
