package domain

import (
	"fmt"
	"strings"
)

const macHexDigits = 12

// MAC is a 48-bit hardware address packed into the low bits of a uint64,
// most-significant octet first.
type MAC uint64

// ParseMAC parses a MAC address from hexadecimal text. Any non-hex characters
// (colons, hyphens, dots) are discarded; exactly 12 hex digits must remain.
// Supports formats: "XX:XX:XX:XX:XX:XX", "XX-XX-XX-XX-XX-XX", "XXXXXXXXXXXX"
func ParseMAC(s string) (MAC, error) {
	var mac uint64
	count := 0
	for _, c := range s {
		nibble := fromHexChar(c)
		if nibble < 0 {
			continue
		}
		mac = mac<<4 | uint64(nibble)
		count++
	}
	if count != macHexDigits || count&1 == 1 {
		return 0, &ValidationError{Field: "mac", Value: s, Err: ErrInvalidAddress}
	}
	return MAC(mac), nil
}

// MustParseMAC parses a MAC address and panics on error.
// Only use in tests or with known-valid input.
func MustParseMAC(s string) MAC {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(fmt.Sprintf("invalid MAC address %q: %v", s, err))
	}
	return mac
}

// String returns the canonical lowercase colon-separated form,
// most-significant byte first.
func (m MAC) String() string {
	var sb strings.Builder
	for n := 5; n >= 0; n-- {
		if n < 5 {
			sb.WriteByte(':')
		}
		fmt.Fprintf(&sb, "%02x", uint8(m>>(n*8)))
	}
	return sb.String()
}

// OUI returns the Organizationally Unique Identifier (upper 3 bytes) as "XX:XX:XX"
func (m MAC) OUI() string {
	return fmt.Sprintf("%02X:%02X:%02X", uint8(m>>40), uint8(m>>32), uint8(m>>24))
}

// IsZero returns true for the all-zero address.
func (m MAC) IsZero() bool {
	return m == 0
}

func fromHexChar(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
