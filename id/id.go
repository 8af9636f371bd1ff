// Package id defines the identifier attached to each enqueue client.
//
// Client IDs are TypeIDs with a "client" prefix in the format
// "client_01h2xcejqtf2nbrexx3vqjhp41". They are K-sortable (UUIDv7-based),
// globally unique, and URL-safe. Job IDs are not covered here: those are
// assigned by storage.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix qualifies every client ID string.
const Prefix = "client"

// ClientID identifies one enqueue client instance.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receiver for UnmarshalText.
type ClientID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ClientID.
var Nil ClientID

// NewClientID generates a new globally unique client ID.
// It panics if generation fails (unrecoverable).
func NewClientID() ClientID {
	tid, err := typeid.Generate(Prefix)
	if err != nil {
		panic(fmt.Sprintf("id: generate client id: %v", err))
	}

	return ClientID{inner: tid, valid: true}
}

// Parse parses a client ID string (e.g., "client_01h2xcejqtf2nbrexx3vqjhp41").
// The "client" prefix is required.
func Parse(s string) (ClientID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	if tid.Prefix() != Prefix {
		return Nil, fmt.Errorf("id: parse %q: expected prefix %q, got %q", s, Prefix, tid.Prefix())
	}

	return ClientID{inner: tid, valid: true}, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ClientID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ClientID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// IsNil reports whether this ID is the zero value.
func (i ClientID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ClientID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input yields Nil.
func (i *ClientID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}
