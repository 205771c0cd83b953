package quote

import (
	"fmt"
	"time"

	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
)

// Build computes a quotation draft from a catalog snapshot and the selected
// exam codes. It performs no I/O. Duplicate codes collapse keeping the first
// occurrence; each total is the exact integer sum of the corresponding
// tariff over the selected entries.
func Build(c *catalog.Catalog, codes []string, patient Patient, now time.Time) (Draft, error) {
	seen := make(map[string]bool, len(codes))
	lines := make([]Line, 0, len(codes))
	var totals Totals

	for _, raw := range codes {
		code := catalog.NormalizeCode(raw)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true

		e, ok := c.Lookup(code)
		if !ok {
			return Draft{}, fmt.Errorf("%w: code %q not in catalog", ErrSelectionInvalid, code)
		}
		lines = append(lines, LineFromEntry(e))
		totals.Fonasa += e.Fonasa
		totals.Copago += e.Copago
		totals.ParticularGeneral += e.ParticularGeneral
		totals.ParticularPreferente += e.ParticularPreferente
	}

	if len(lines) == 0 {
		return Draft{}, ErrEmptySelection
	}

	return Draft{
		Patient:   patient,
		CreatedAt: now,
		Lines:     lines,
		Totals:    totals,
	}, nil
}
