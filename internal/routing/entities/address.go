package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Address represents an IPv4 network address with a prefix length.
// The stored value always has its host bits cleared; ParseAddress masks
// the raw value before storage.
type Address struct {
	value  uint32
	prefix int
}

// maskForPrefix returns the network mask for a prefix length in 0..32
func maskForPrefix(prefix int) uint32 {
	if prefix == 0 {
		return 0
	}
	return 0xFFFFFFFF << (32 - prefix)
}

// ParseAddress parses "a.b.c.d" or "a.b.c.d/n" into an Address.
// A missing prefix defaults to 32 (host route). The parsed value is
// masked by the prefix's network mask, so "192.168.1.5/24" stores
// 192.168.1.0/24.
func ParseAddress(text string) (Address, error) {
	ipText := text
	prefix := 32

	if idx := strings.IndexByte(text, '/'); idx >= 0 {
		ipText = text[:idx]
		p, err := strconv.Atoi(text[idx+1:])
		if err != nil || p < 0 || p > 32 {
			return Address{}, &AddressError{Type: ErrInvalidPrefix, Input: text}
		}
		prefix = p
	}

	octets := strings.Split(ipText, ".")
	if len(octets) != 4 {
		return Address{}, &AddressError{Type: ErrMalformedAddress, Input: text}
	}

	var value uint32
	for _, octet := range octets {
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return Address{}, &AddressError{Type: ErrMalformedAddress, Input: text}
		}
		value = value<<8 | uint32(n)
	}

	return Address{value: value & maskForPrefix(prefix), prefix: prefix}, nil
}

// Prefix returns the prefix length of the address
func (a Address) Prefix() int {
	return a.prefix
}

// Contains reports whether this address, viewed as a network, covers the
// other address. Both sides are compared under this address's prefix
// mask, so the probe's own prefix length is irrelevant.
func (a Address) Contains(other Address) bool {
	return other.value&maskForPrefix(a.prefix) == a.value
}

// Equal reports structural equality on (value, prefix)
func (a Address) Equal(other Address) bool {
	return a.value == other.value && a.prefix == other.prefix
}

// String returns the dotted-quad CIDR rendering of the address
func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d/%d",
		(a.value>>24)&0xFF,
		(a.value>>16)&0xFF,
		(a.value>>8)&0xFF,
		a.value&0xFF,
		a.prefix)
}

// Hash returns a hash code for this Address based on its network value
// and prefix length
func (a Address) Hash() uint64 {
	h := xxhash.New()
	_, _ = h.Write([]byte{
		byte(a.value >> 24),
		byte(a.value >> 16),
		byte(a.value >> 8),
		byte(a.value),
		byte(a.prefix),
	})
	return h.Sum64()
}
