// Package influxdb provides an optional telemetry sink for Gray Logic
// Intercom.
//
// When enabled, accepted incoming-call events and relay-open outcomes are
// written to InfluxDB for dashboards and long-term trends. All writes are
// batched and non-blocking; the sink is strictly best-effort and failures
// never affect call tracking or relay actions.
package influxdb
