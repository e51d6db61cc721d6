package entities

import (
	"fmt"
)

// AddressErrorType represents the category of address parsing error
type AddressErrorType int

// Address error type constants
const (
	// ErrMalformedAddress indicates a malformed dotted-quad or non-numeric octet
	ErrMalformedAddress AddressErrorType = iota
	// ErrInvalidPrefix indicates a prefix length outside 0-32
	ErrInvalidPrefix
)

// String returns a string representation of the address error type
func (e AddressErrorType) String() string {
	switch e {
	case ErrMalformedAddress:
		return "MalformedAddress"
	case ErrInvalidPrefix:
		return "InvalidPrefix"
	default:
		return "UnknownError"
	}
}

// AddressError represents an error that occurred while parsing an IP
// address. Both error kinds are recoverable and user-facing: the caller
// reports the message and continues with the table unchanged.
type AddressError struct {
	Type  AddressErrorType
	Input string
}

// Error implements the error interface for AddressError
func (ae *AddressError) Error() string {
	switch ae.Type {
	case ErrInvalidPrefix:
		return fmt.Sprintf("invalid prefix length in %q: allowed range is 0-32", ae.Input)
	default:
		return fmt.Sprintf("invalid IP address format %q: expected something like 192.168.0.1", ae.Input)
	}
}
