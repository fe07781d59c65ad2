// Package metrics defines the sinks that observe forecast requests. Sinks
// such as PromSink and InfluxSink (see infra/metrics) record one
// events.ForecastEvent per request and can be combined with NewMultiSink.
// NewMetricsSink builds the configured sinks from the registry and returns a
// MultiSink automatically when several are configured.
package metrics
