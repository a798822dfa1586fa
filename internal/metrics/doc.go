// Package metrics provides observability hooks for htmlpublish operations.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics calls never need nil checks:
//
//	p := publish.New(fsys) // NoopRecorder
//	p = p.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A one-shot CLI has no scrape endpoint. When a metrics file is configured
// the gathered registry is written with WriteTextfile at exit, in the format
// read by the node exporter textfile collector.
package metrics
