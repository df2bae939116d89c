// Package prometheus exposes engine metrics in Prometheus text exposition
// format without importing the Prometheus client library. Mount Handler on a
// scrape endpoint.
package prometheus
