package promadapter

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollectorImplementsMetricsPolicy(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.IncAdmitted()
	c.IncRejected()
	c.IncCompleted()
	c.IncCancelledQueued()
	c.IncCancelledRunning()
	c.SetQueued(3)
	c.SetInFlight(2)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() err = %v", err)
	}
	if len(families) != 7 {
		t.Fatalf("len(families) = %d, want 7", len(families))
	}
}

func TestNewCollectorPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("second NewCollector on the same registry did not panic")
		}
	}()
	NewCollector(reg)
}
