package routing

import (
	"sort"
	"sync"

	"github.com/netsimlab/routesim/internal/routing/entities"
)

// RoutingTable owns an insertion-ordered collection of routes. A single
// RWMutex guards every operation so that concurrent lookups from the
// trace runner never observe a partially mutated table.
type RoutingTable struct {
	mu       sync.RWMutex
	routes   []entities.Route
	networks *entities.NetworkSet
}

// NewRoutingTable creates an empty routing table
func NewRoutingTable() *RoutingTable {
	return &RoutingTable{
		networks: entities.NewNetworkSet(),
	}
}

// Insert appends the route unconditionally. Duplicate networks are
// permitted; lookup tie-breaks on insertion order, not uniqueness.
func (t *RoutingTable) Insert(route entities.Route) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.routes = append(t.routes, route)
	t.networks.Add(route.Network)
}

// Remove deletes every route whose network equals the argument exactly
// (both value and prefix length) and returns how many were removed. A
// /24 delete does not touch a /25 route covering the same base address.
func (t *RoutingTable) Remove(network entities.Address) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.networks.Contains(network) {
		return 0
	}

	kept := t.routes[:0]
	removed := 0
	for _, route := range t.routes {
		if route.Network.Equal(network) {
			removed++
			continue
		}
		kept = append(kept, route)
	}
	t.routes = kept
	t.networks.Remove(network, removed)
	return removed
}

// FindBestMatch returns the most specific route covering the
// destination (longest-prefix match). Among candidates with equal
// prefix length the first inserted wins: the scan replaces its
// candidate only on a strictly longer prefix. Metric is never
// consulted.
func (t *RoutingTable) FindBestMatch(destination entities.Address) (entities.Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var best entities.Route
	found := false
	for _, route := range t.routes {
		if !route.Matches(destination) {
			continue
		}
		if !found || route.Network.Prefix() > best.Network.Prefix() {
			best = route
			found = true
		}
	}
	return best, found
}

// Snapshot returns a copy of the routes sorted by ascending metric.
// The sort is stable, so routes with equal metric keep their insertion
// order. The ordering is for display only; lookup never uses it.
func (t *RoutingTable) Snapshot() []entities.Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make([]entities.Route, len(t.routes))
	copy(snapshot, t.routes)
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Metric < snapshot[j].Metric
	})
	return snapshot
}

// Len returns the number of routes in the table
func (t *RoutingTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}

// Networks returns the number of distinct networks in the table
func (t *RoutingTable) Networks() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.networks.Size()
}
