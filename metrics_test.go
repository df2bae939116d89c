package authgate

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricAuthenticateLatency, time.Millisecond)

	if m.Enabled() {
		t.Fatal("disabled metrics reported enabled")
	}
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("value = %d, want 0", got)
	}
	snapshot := m.Snapshot()
	if len(snapshot.Counters) != 0 || len(snapshot.Histograms) != 0 {
		t.Fatalf("snapshot = %+v, want empty", snapshot)
	}

	// Nil receiver is equally inert.
	var nilMetrics *Metrics
	nilMetrics.Inc(MetricLoginSuccess)
	if nilMetrics.Value(MetricLoginSuccess) != 0 {
		t.Fatal("nil metrics returned a value")
	}
}

func TestMetricsCountersAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Inc(MetricTokenAccepted)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricTokenAccepted); got != 800 {
		t.Fatalf("value = %d, want 800", got)
	}

	m.Observe(MetricAuthenticateLatency, 2*time.Millisecond)
	m.Observe(MetricAuthenticateLatency, 30*time.Millisecond)
	m.Observe(MetricAuthenticateLatency, time.Second)

	snapshot := m.Snapshot()
	if snapshot.Counters[MetricTokenAccepted] != 800 {
		t.Fatalf("snapshot counter = %d, want 800", snapshot.Counters[MetricTokenAccepted])
	}
	buckets := snapshot.Histograms[MetricAuthenticateLatency]
	if len(buckets) != 8 {
		t.Fatalf("bucket count = %d, want 8", len(buckets))
	}
	if buckets[0] != 1 || buckets[3] != 1 || buckets[7] != 1 {
		t.Fatalf("buckets = %v", buckets)
	}

	// Unknown ids never record or panic.
	m.Inc(metricIDCount + 5)
	if got := m.Value(metricIDCount + 5); got != 0 {
		t.Fatalf("out-of-range value = %d, want 0", got)
	}
}
