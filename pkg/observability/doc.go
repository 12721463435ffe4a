// Package observability provides the logrus logger and Prometheus run metrics
// used by the backend-guard CLI.
//
// # Logging
//
//	log := observability.NewLogger("debug", os.Stderr)
//	log.WithField("run_id", runID).Debug("discovered sources")
//
// Unknown level names fall back to info.
//
// # Metrics
//
// Each run gets its own registry so watch-mode re-runs start from zero:
//
//	metrics := observability.NewMetrics()
//	engine.SetRecorder(metrics)
//	...
//	err := metrics.WriteTextfile("/var/lib/node_exporter/backend_guard.prom")
//
// The textfile format is the one read by the node-exporter textfile collector.
package observability
