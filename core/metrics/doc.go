// Package metrics defines the observability events the engine emits and the
// sink interfaces that record them. Concrete sinks (Prometheus, InfluxDB)
// live in infra/metrics; the engine only sees the MetricsSink interface.
package metrics
