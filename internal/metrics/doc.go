// Package metrics provides observability hooks for docstamp builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so instrumented code never checks for nil:
//
//	resolver := revision.NewResolver(querier, 2020) // NoopRecorder
//	resolver := revision.NewResolver(querier, 2020, revision.WithRecorder(rec))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// A one-shot build has no scrape endpoint, so WriteTextfile dumps the registry
// in the node-exporter textfile format instead.
package metrics
