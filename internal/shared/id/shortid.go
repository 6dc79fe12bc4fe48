// Package id generates short random identifiers for human-facing references
// such as quote numbers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// alphabet drops 0/O and 1/I so numbers can be read over the phone.
	alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

	DefaultLength = 8
)

const (
	PrefixQuote = "QT"
)

// Generate returns a cryptographically random string of length characters.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateWithPrefix returns "PREFIX-XXXXXXXX".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "-" + s, nil
}

// NewQuoteNumber returns a fresh quote reference like "QT-7KQ2M9XA".
func NewQuoteNumber() (string, error) {
	return GenerateWithPrefix(PrefixQuote, DefaultLength)
}

// HasPrefix reports whether ref looks like "PREFIX-<chars from the alphabet>".
func HasPrefix(ref, prefix string) bool {
	rest, ok := strings.CutPrefix(ref, prefix+"-")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
