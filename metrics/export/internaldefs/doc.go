// Package internaldefs holds the shared metric name and bucket definitions
// consumed by the export packages. It exists so the Prometheus and OTel
// exporters render identical metric names from one table.
package internaldefs
