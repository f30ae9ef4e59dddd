// Package observe provides telemetry for the rating cache: tracing, metrics,
// and structured logging behind one Observer.
//
// It is pure instrumentation: no computation, no storage, no I/O beyond
// exporter setup. The cache façade records through it; hosts decide where the
// data goes via exporter configuration.
package observe
