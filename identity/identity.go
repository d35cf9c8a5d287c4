// Package identity allocates stable slop identifiers.
package identity

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// Length is the fixed identifier length.
const Length = 8

// alphabet is lowercase base36. 36^8 gives ~2.8e12 identifiers, which keeps
// collision probability negligible at expected publish volumes without any
// external coordination.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var idPattern = regexp.MustCompile(`^[0-9a-z]{8}$`)

// Allocator produces collision-resistant document identifiers.
type Allocator struct{}

// NewAllocator returns an allocator backed by the system entropy source.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate returns a new fixed-length identifier. The only failure mode is an
// unavailable entropy source, which is fatal for the caller: publishing must
// not proceed with a predictable identifier.
func (a *Allocator) Allocate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("entropy source unavailable: %w", err)
	}

	id := make([]byte, Length)
	for i, b := range buf {
		id[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(id), nil
}

// Valid reports whether s is a well-formed slop identifier. Used to guard
// resume paths, which key everything off the identifier.
func Valid(s string) bool {
	return idPattern.MatchString(s)
}
