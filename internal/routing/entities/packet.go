package entities

import (
	"fmt"
)

// Packet is an ephemeral simulated packet, constructed per send
// invocation and never retained.
type Packet struct {
	Source      Address
	Destination Address
	Protocol    string
}

// String returns a human-readable rendering of the packet
func (p Packet) String() string {
	return fmt.Sprintf("packet from %s to %s [%s]", p.Source, p.Destination, p.Protocol)
}
