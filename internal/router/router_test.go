package router

import (
	"strings"
	"testing"

	"github.com/netsimlab/routesim/internal/journal"
	"github.com/netsimlab/routesim/internal/logger"
)

func newTestRouter() (*Router, *journal.MemorySink) {
	sink := &journal.MemorySink{}
	return New(sink, logger.New("error", true)), sink
}

func TestAddRouteJournalsAndInserts(t *testing.T) {
	r, sink := newTestRouter()

	route, err := r.AddRoute("192.168.1.0/24", "192.168.1.1", 10)
	if err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}
	if route.Network.String() != "192.168.1.0/24" {
		t.Errorf("unexpected network %s", route.Network)
	}

	lines := sink.Lines()
	if len(lines) != 1 || lines[0] != "ADD 192.168.1.0/24 via 192.168.1.1/32 metric 10" {
		t.Errorf("unexpected journal: %q", lines)
	}
	if routes, _ := r.Stats(); routes != 1 {
		t.Errorf("expected 1 route, got %d", routes)
	}
}

func TestAddRouteMasksHostBits(t *testing.T) {
	r, _ := newTestRouter()

	route, err := r.AddRoute("192.168.1.5/24", "192.168.1.1", 10)
	if err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}
	if route.Network.String() != "192.168.1.0/24" {
		t.Errorf("host bits survived: %s", route.Network)
	}
}

func TestAddRouteFailuresMutateNothing(t *testing.T) {
	tests := []struct {
		name    string
		network string
		gateway string
		metric  int
	}{
		{"bad octet", "999.1.1.1", "10.0.0.1", 10},
		{"bad prefix", "10.0.0.0/33", "10.0.0.1", 10},
		{"bad gateway", "10.0.0.0/8", "not-an-ip", 10},
		{"negative metric", "10.0.0.0/8", "10.0.0.1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sink := newTestRouter()
			if _, err := r.AddRoute(tt.network, tt.gateway, tt.metric); err == nil {
				t.Fatal("expected an error")
			}
			if routes, _ := r.Stats(); routes != 0 {
				t.Errorf("table mutated on failed add: %d routes", routes)
			}
			if len(sink.Lines()) != 0 {
				t.Errorf("journal written on failed add: %q", sink.Lines())
			}
		})
	}
}

func TestDeleteRoute(t *testing.T) {
	r, sink := newTestRouter()
	if _, err := r.AddRoute("10.0.0.0/24", "192.168.0.1", 10); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}
	if _, err := r.AddRoute("10.0.0.0/24", "192.168.0.2", 20); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}

	removed, err := r.DeleteRoute("10.0.0.0/24")
	if err != nil {
		t.Fatalf("DeleteRoute failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removals, got %d", removed)
	}

	lines := sink.Lines()
	if lines[len(lines)-1] != "DEL 10.0.0.0/24" {
		t.Errorf("missing DEL record, journal: %q", lines)
	}
}

func TestDeleteRouteNotFound(t *testing.T) {
	r, sink := newTestRouter()

	removed, err := r.DeleteRoute("10.0.0.0/24")
	if err != nil {
		t.Fatalf("DeleteRoute failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removals, got %d", removed)
	}
	// A valid delete is journaled even when nothing matched.
	if lines := sink.Lines(); len(lines) != 1 || lines[0] != "DEL 10.0.0.0/24" {
		t.Errorf("unexpected journal: %q", lines)
	}
}

func TestDeleteRouteParseFailure(t *testing.T) {
	r, sink := newTestRouter()

	if _, err := r.DeleteRoute("10.0.0.0/99"); err == nil {
		t.Fatal("expected an error")
	}
	if len(sink.Lines()) != 0 {
		t.Errorf("journal written on failed delete: %q", sink.Lines())
	}
}

func TestListRoutesOrdering(t *testing.T) {
	r, _ := newTestRouter()
	for _, add := range []struct {
		network string
		metric  int
	}{
		{"10.0.0.0/8", 30},
		{"172.16.0.0/12", 10},
		{"192.168.0.0/16", 20},
	} {
		if _, err := r.AddRoute(add.network, "192.168.0.1", add.metric); err != nil {
			t.Fatalf("AddRoute failed: %v", err)
		}
	}

	lines := r.ListRoutes()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"metric 10", "metric 20", "metric 30"} {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], want)
		}
	}
}

func TestListRoutesEmpty(t *testing.T) {
	r, _ := newTestRouter()
	if lines := r.ListRoutes(); len(lines) != 0 {
		t.Errorf("expected empty listing, got %q", lines)
	}
}

func TestForward(t *testing.T) {
	r, sink := newTestRouter()
	if _, err := r.AddRoute("192.168.1.0/24", "192.168.1.1", 10); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}

	t.Run("forwarded packet", func(t *testing.T) {
		outcome, err := r.Forward("10.0.0.1", "192.168.1.100", "ICMP")
		if err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		if !outcome.Decision.Forwarded {
			t.Fatal("expected a forward verdict")
		}
		if outcome.Decision.Gateway.String() != "192.168.1.1/32" {
			t.Errorf("unexpected gateway %s", outcome.Decision.Gateway)
		}
		lines := sink.Lines()
		last := lines[len(lines)-1]
		if last != "FWD packet from 10.0.0.1/32 to 192.168.1.100/32 [ICMP] via 192.168.1.1/32" {
			t.Errorf("unexpected FWD record %q", last)
		}
	})

	t.Run("dropped packet", func(t *testing.T) {
		outcome, err := r.Forward("10.0.0.1", "8.8.8.8", "UDP")
		if err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		if outcome.Decision.Forwarded {
			t.Fatal("expected a drop verdict")
		}
		lines := sink.Lines()
		last := lines[len(lines)-1]
		if last != "DROP packet from 10.0.0.1/32 to 8.8.8.8/32 [UDP]" {
			t.Errorf("unexpected DROP record %q", last)
		}
	})

	t.Run("parse failure journals nothing", func(t *testing.T) {
		before := len(sink.Lines())
		if _, err := r.Forward("10.0.0.1", "999.1.1.1", "TCP"); err == nil {
			t.Fatal("expected an error")
		}
		if len(sink.Lines()) != before {
			t.Errorf("journal written on failed send")
		}
	})
}
