package goGuard

import (
	"sync"
	"testing"

	"github.com/MrEthical07/goGuard/storage/memory"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricRefreshSuccess)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricRefreshSuccess); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsSnapshotCoversAllCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLogout)
	m.Inc(MetricSessionCleared)
	m.Inc(MetricSessionCleared)

	snap := m.Snapshot()
	if len(snap.Counters) != int(metricIDCount) {
		t.Fatalf("snapshot counters = %d, want %d", len(snap.Counters), metricIDCount)
	}
	if snap.Counters[MetricLogout] != 1 || snap.Counters[MetricSessionCleared] != 2 {
		t.Fatalf("snapshot = %+v", snap.Counters)
	}
}

func TestGuardDecisionCounters(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), func(cfg *Config) {
		cfg.Metrics.Enabled = true
	})

	c.ObserveGuardDecision(true)
	c.ObserveGuardDecision(false)
	c.ObserveGuardDecision(false)

	snap := c.MetricsSnapshot()
	if snap.Counters[MetricGuardAllowed] != 1 || snap.Counters[MetricGuardDenied] != 2 {
		t.Fatalf("guard counters = %d/%d, want 1/2",
			snap.Counters[MetricGuardAllowed], snap.Counters[MetricGuardDenied])
	}
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)

	if m.Value(MetricLoginSuccess) != 0 {
		t.Fatal("nil metrics must read zero")
	}
	if m.Enabled() {
		t.Fatal("nil metrics must report disabled")
	}
}

func TestMetricsOutOfRangeIDIgnored(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(metricIDCount)
	m.Inc(metricIDCount + 10)

	if got := m.Value(metricIDCount + 10); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
