package quote_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
)

// catalogFromCSV loads a catalog snapshot from inline CSV content.
func catalogFromCSV(t *testing.T, content string) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aranceles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	c, err := catalog.NewLoader(path).Load()
	require.NoError(t, err)
	return c
}
