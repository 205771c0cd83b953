package quote_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

func TestNewFolioShape(t *testing.T) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for i := 0; i < 100; i++ {
		f, err := quote.NewFolio()
		require.NoError(t, err)
		require.Len(t, f, quote.FolioLength)
		for _, r := range f {
			require.Contains(t, alphabet, string(r))
		}
	}
}

func TestNewFolioNoDuplicatesIn10k(t *testing.T) {
	seen := make(map[string]bool, 10_000)
	for i := 0; i < 10_000; i++ {
		f, err := quote.NewFolio()
		require.NoError(t, err)
		require.False(t, seen[f], "duplicate folio %s after %d draws", f, i)
		seen[f] = true
	}
}

func TestNormalizeFolio(t *testing.T) {
	require.Equal(t, "AB2KQ9XZ", quote.NormalizeFolio("  ab2kq9xz "))
	require.Equal(t, "", quote.NormalizeFolio("   "))
	require.False(t, strings.ContainsAny(quote.NormalizeFolio("ab2kq9xz"), "abcdefghijklmnopqrstuvwxyz"))
}
