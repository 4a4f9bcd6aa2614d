/*
Package observability turns scheduler lifecycle events into Prometheus
metrics and structured log lines.

Both are exposed as domain.LifecycleHooks, so they can be merged and passed to
the scheduler with runtime.WithLifecycleHooks:

	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks().Merge(observability.LogHooks(logger))
*/
package observability
