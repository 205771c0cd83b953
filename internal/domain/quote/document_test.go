package quote_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

func savedMaster() quote.Master {
	return quote.Master{
		Folio:     "AB2KQ9XZ",
		Patient:   quote.Patient{Name: "María Soto", DocumentType: quote.DocumentRUT, DocumentID: "12.345.678-5"},
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Totals:    quote.Totals{Fonasa: 3680, Copago: 1100, ParticularGeneral: 12500, ParticularPreferente: 9800},
	}
}

func TestDocumentFromRecordsKeepsStoredValues(t *testing.T) {
	details := []quote.Detail{
		{Folio: "AB2KQ9XZ", Position: 0, Code: "301045", Name: "HEMOGRAMA", Copago: 1100},
	}
	// The resolver simulates a catalog updated after the quote was saved.
	resolve := func(code string) (quote.Line, bool) {
		return quote.Line{Code: code, Name: "HEMOGRAMA", Copago: 9999, ParticularGeneral: 99999}, true
	}

	doc := quote.DocumentFromRecords(savedMaster(), details, resolve)

	require.Len(t, doc.Lines, 1)
	require.Equal(t, int64(1100), doc.Lines[0].Copago, "stored copay wins over the current catalog")
	require.Equal(t, "HEMOGRAMA", doc.Lines[0].Name)
	require.Equal(t, quote.Totals{Fonasa: 3680, Copago: 1100, ParticularGeneral: 12500, ParticularPreferente: 9800}, doc.Totals)
}

func TestDocumentFromRecordsResolvesLegacyRows(t *testing.T) {
	// Rows persisted before the denormalized columns existed carry only the
	// code; those and only those consult the resolver.
	details := []quote.Detail{
		{Folio: "AB2KQ9XZ", Position: 0, Code: "301045"},
		{Folio: "AB2KQ9XZ", Position: 1, Code: "302034", Name: "PERFIL LIPIDICO", Copago: 1470},
	}
	resolve := func(code string) (quote.Line, bool) {
		if code != "301045" {
			t.Fatalf("resolver consulted for non-legacy code %s", code)
		}
		return quote.Line{Code: code, Name: "HEMOGRAMA", Copago: 1100}, true
	}

	doc := quote.DocumentFromRecords(savedMaster(), details, resolve)

	require.Len(t, doc.Lines, 2)
	require.Equal(t, "HEMOGRAMA", doc.Lines[0].Name)
	require.Equal(t, int64(1100), doc.Lines[0].Copago)
	require.Equal(t, int64(1470), doc.Lines[1].Copago)
}

func TestDocumentFromRecordsLegacyRowWithoutCatalogEntry(t *testing.T) {
	details := []quote.Detail{
		{Folio: "AB2KQ9XZ", Position: 0, Code: "999999"},
	}
	resolve := func(string) (quote.Line, bool) { return quote.Line{}, false }

	doc := quote.DocumentFromRecords(savedMaster(), details, resolve)

	require.Len(t, doc.Lines, 1)
	require.Equal(t, "999999", doc.Lines[0].Code)
	require.Empty(t, doc.Lines[0].Name)
}
