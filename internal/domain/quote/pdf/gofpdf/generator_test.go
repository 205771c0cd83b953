package gofpdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

func sampleDocument(lines int) quote.Document {
	doc := quote.Document{
		Folio: "AB2KQ9XZ",
		Patient: quote.Patient{
			Name:         "María Soto",
			DocumentType: quote.DocumentRUT,
			DocumentID:   "12.345.678-5",
			BirthDate:    time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		CreatedAt: time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
	}
	for i := 0; i < lines; i++ {
		doc.Lines = append(doc.Lines, quote.Line{
			Code:                 "301045",
			Name:                 "HEMOGRAMA",
			Fonasa:               3500,
			Copago:               1200,
			ParticularGeneral:    12500,
			ParticularPreferente: 9800,
		})
		doc.Totals.Fonasa += 3500
		doc.Totals.Copago += 1200
		doc.Totals.ParticularGeneral += 12500
		doc.Totals.ParticularPreferente += 9800
	}
	return doc
}

func TestGenerateProducesPDF(t *testing.T) {
	out, err := New("").Generate(sampleDocument(3))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Equal(t, "%PDF", string(out[:4]))
}

func TestGeneratePaginatesLongQuotes(t *testing.T) {
	out, err := New("Policlínico Tabancura").Generate(sampleDocument(80))
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestFileName(t *testing.T) {
	doc := sampleDocument(1)
	require.Equal(t, "cotizacion_AB2KQ9XZ.pdf", doc.FileName())
}
