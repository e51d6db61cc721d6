package entities

// NetworkSet is a counted set of networks keyed by their hash. The
// routing table keeps one alongside its route list so membership checks
// do not require a scan; counting is needed because duplicate routes for
// the same network are permitted.
type NetworkSet struct {
	counts map[uint64]int // maps network hash to number of routes referencing it
}

// NewNetworkSet creates a new NetworkSet
func NewNetworkSet() *NetworkSet {
	return &NetworkSet{
		counts: make(map[uint64]int),
	}
}

// Add records one more route referencing the network
func (ns *NetworkSet) Add(network Address) {
	ns.counts[network.Hash()]++
}

// Remove drops n route references to the network, deleting the entry
// when none remain
func (ns *NetworkSet) Remove(network Address, n int) {
	hash := network.Hash()
	if remaining := ns.counts[hash] - n; remaining > 0 {
		ns.counts[hash] = remaining
	} else {
		delete(ns.counts, hash)
	}
}

// Contains checks if at least one route references the network
func (ns *NetworkSet) Contains(network Address) bool {
	_, exists := ns.counts[network.Hash()]
	return exists
}

// Size returns the number of distinct networks in the set
func (ns *NetworkSet) Size() int {
	return len(ns.counts)
}
