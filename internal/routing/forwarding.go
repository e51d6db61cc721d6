package routing

import (
	"github.com/netsimlab/routesim/internal/routing/entities"
)

// Decision is the outcome of resolving a destination against a routing
// table: forward via a gateway, or drop.
type Decision struct {
	Forwarded bool
	Gateway   entities.Address
}

// Decide resolves the destination with a longest-prefix-match lookup
// and produces the forward/drop verdict. It is a pure read of the
// table's current state; a miss is a normal Drop outcome, not an error.
func Decide(table *RoutingTable, destination entities.Address) Decision {
	route, found := table.FindBestMatch(destination)
	if !found {
		return Decision{}
	}
	return Decision{Forwarded: true, Gateway: route.Gateway}
}
