// Package router is the simulator core facade consumed by the shell
// and the trace runner: it owns the routing table and records every
// table mutation and forwarding decision in the activity journal.
package router

import (
	"fmt"

	"github.com/netsimlab/routesim/internal/journal"
	"github.com/netsimlab/routesim/internal/logger"
	"github.com/netsimlab/routesim/internal/routing"
	"github.com/netsimlab/routesim/internal/routing/entities"
)

// Router binds the routing table to the activity journal and the
// diagnostics logger
type Router struct {
	table   *routing.RoutingTable
	journal journal.Sink
	log     *logger.Logger
}

// ForwardOutcome reports what the simulator did with one packet
type ForwardOutcome struct {
	Packet   entities.Packet
	Decision routing.Decision
}

// New creates a router with an empty table
func New(sink journal.Sink, log *logger.Logger) *Router {
	return &Router{
		table:   routing.NewRoutingTable(),
		journal: sink,
		log:     log.WithComponent("router"),
	}
}

// AddRoute parses the network and gateway texts and inserts the route.
// A parse failure or negative metric leaves both the table and the
// journal untouched.
func (r *Router) AddRoute(networkText, gatewayText string, metric int) (entities.Route, error) {
	network, err := entities.ParseAddress(networkText)
	if err != nil {
		return entities.Route{}, err
	}
	gateway, err := entities.ParseAddress(gatewayText)
	if err != nil {
		return entities.Route{}, err
	}
	if metric < 0 {
		return entities.Route{}, fmt.Errorf("metric must be non-negative, got %d", metric)
	}

	route := entities.Route{Network: network, Gateway: gateway, Metric: metric}
	r.table.Insert(route)
	r.appendRecord(journal.RouteAdded(route))
	r.log.RouteAdded(network.String(), gateway.String(), metric)
	return route, nil
}

// DeleteRoute removes every route whose network matches the given text
// exactly and returns the removal count. A valid delete is journaled
// whether or not anything matched; a parse failure is not.
func (r *Router) DeleteRoute(networkText string) (int, error) {
	network, err := entities.ParseAddress(networkText)
	if err != nil {
		return 0, err
	}

	removed := r.table.Remove(network)
	r.appendRecord(journal.RouteDeleted(network))
	r.log.RouteDeleted(network.String(), removed)
	return removed, nil
}

// ListRoutes returns the rendered table sorted by ascending metric.
// An empty slice means the table is empty.
func (r *Router) ListRoutes() []string {
	snapshot := r.table.Snapshot()
	lines := make([]string, 0, len(snapshot))
	for _, route := range snapshot {
		lines = append(lines, route.String())
	}
	return lines
}

// Forward builds a packet from the given texts, resolves its
// destination against the table and journals the verdict. Lookup
// misses are Drop outcomes, never errors; only parse failures error,
// and those journal nothing.
func (r *Router) Forward(sourceText, destinationText, protocol string) (ForwardOutcome, error) {
	source, err := entities.ParseAddress(sourceText)
	if err != nil {
		return ForwardOutcome{}, err
	}
	destination, err := entities.ParseAddress(destinationText)
	if err != nil {
		return ForwardOutcome{}, err
	}

	packet := entities.Packet{Source: source, Destination: destination, Protocol: protocol}
	decision := routing.Decide(r.table, destination)
	if decision.Forwarded {
		r.appendRecord(journal.PacketForwarded(packet, decision.Gateway))
		r.log.PacketDecision(packet.String(), decision.Gateway.String(), true)
	} else {
		r.appendRecord(journal.PacketDropped(packet))
		r.log.PacketDecision(packet.String(), "", false)
	}
	return ForwardOutcome{Packet: packet, Decision: decision}, nil
}

// Stats returns the total route count and the distinct network count
func (r *Router) Stats() (routes, networks int) {
	return r.table.Len(), r.table.Networks()
}

func (r *Router) appendRecord(line string) {
	if err := r.journal.Append(line); err != nil {
		r.log.Warn("Failed to append activity record", "error", err)
	}
}
