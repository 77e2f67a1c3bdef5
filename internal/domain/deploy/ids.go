package deploy

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// IDLength is the byte length of Sui object ids and addresses.
const IDLength = 32

// ObjectID identifies an on-chain object or package.
type ObjectID [IDLength]byte

// Address identifies an account. Sui addresses share the object id layout.
type Address [IDLength]byte

// ParseObjectID parses a hex object id. The 0x prefix is optional and short
// forms such as "0x2" are left-padded with zeros.
func ParseObjectID(s string) (ObjectID, error) {
	var id ObjectID
	b, err := parseID(s)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// MustParseObjectID is ParseObjectID for constants.
func MustParseObjectID(s string) ObjectID {
	id, err := ParseObjectID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseAddress parses a hex account address.
func ParseAddress(s string) (Address, error) {
	var addr Address
	b, err := parseID(s)
	if err != nil {
		return addr, err
	}
	copy(addr[:], b)
	return addr, nil
}

func parseID(s string) ([]byte, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if raw == "" {
		return nil, fmt.Errorf("empty id")
	}
	if len(raw) > IDLength*2 {
		return nil, fmt.Errorf("id %q longer than %d bytes", s, IDLength)
	}
	raw = strings.Repeat("0", IDLength*2-len(raw)) + raw
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("id %q is not valid hex: %w", s, err)
	}
	return b, nil
}

// String returns the canonical 0x-prefixed 64 character form.
func (id ObjectID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// IsZero reports whether the id is all zero bytes.
func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// String returns the canonical 0x-prefixed 64 character form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

// FrameworkPackage is the Sui framework package (0x2).
var FrameworkPackage = MustParseObjectID("0x2")

// MarshalText renders the canonical form.
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts any form ParseObjectID accepts.
func (id *ObjectID) UnmarshalText(text []byte) error {
	parsed, err := ParseObjectID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalText renders the canonical form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts any form ParseAddress accepts.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
