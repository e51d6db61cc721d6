package entities

import (
	"fmt"
)

// Route represents a routing table entry: a destination network, the
// next-hop gateway, and a display-only cost metric. Routes are immutable
// once created.
type Route struct {
	Network Address // Destination network
	Gateway Address // Next-hop gateway, conventionally a /32 host address
	Metric  int     // Route metric, used only for display ordering
}

// Matches reports whether this route's network covers the given address
func (r Route) Matches(addr Address) bool {
	return r.Network.Contains(addr)
}

// String returns a human-readable rendering of the route
func (r Route) String() string {
	return fmt.Sprintf("network %s via %s metric %d", r.Network, r.Gateway, r.Metric)
}
