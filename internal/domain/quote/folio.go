package quote

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Folio alphabet: uppercase letters and digits minus the ambiguous
// I/O/0/1 glyphs, so a folio read over the phone survives the trip.
const folioAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// FolioLength is the fixed size of a generated folio.
const FolioLength = 8

// NewFolio returns a fresh 8-character folio from a cryptographically
// strong source. Folios are not guessable and collisions are only handled
// as a storage-level retry, never assumed impossible.
func NewFolio() (string, error) {
	buf := make([]byte, FolioLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("folio: %w", err)
	}
	out := make([]byte, FolioLength)
	for i, b := range buf {
		out[i] = folioAlphabet[int(b)%len(folioAlphabet)]
	}
	return string(out), nil
}

// NormalizeFolio maps operator input to the canonical uppercase form used
// for storage and comparison.
func NormalizeFolio(folio string) string {
	return strings.ToUpper(strings.TrimSpace(folio))
}
