// Package ids generates and validates resource identifiers.
//
// Identifiers are random UUIDv4 values rendered as 32 lowercase hex characters.
package ids

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in a well-formed identifier.
const Length = 32

// New returns a fresh identifier.
func New() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Normalize trims and lower-cases an identifier taken from user input.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
