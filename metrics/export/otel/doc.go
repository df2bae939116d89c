// Package otel bridges engine metrics to OpenTelemetry. The exporter
// registers observable instruments against a caller-supplied meter; values
// are pulled from a metrics snapshot on each collection cycle.
package otel
