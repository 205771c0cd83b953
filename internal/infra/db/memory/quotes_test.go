package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

func sampleDraft() quote.Draft {
	return quote.Draft{
		Patient: quote.Patient{
			Name:         "María Soto",
			DocumentType: quote.DocumentRUT,
			DocumentID:   "12.345.678-5",
			BirthDate:    time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
			Email:        "maria@example.com",
		},
		CreatedAt: time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		Lines: []quote.Line{
			{Code: "001", Name: "HEMOGRAMA", Fonasa: 3500, Copago: 1200, ParticularGeneral: 1000, ParticularPreferente: 9800},
			{Code: "002", Name: "PERFIL LIPIDICO", Fonasa: 4100, Copago: 1500, ParticularGeneral: 2500, ParticularPreferente: 11200},
		},
		Totals: quote.Totals{Fonasa: 7600, Copago: 2700, ParticularGeneral: 3500, ParticularPreferente: 21000},
	}
}

func TestSaveFindRoundTrip(t *testing.T) {
	s := NewQuoteStore()
	ctx := context.Background()

	folio, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)
	require.Len(t, folio, quote.FolioLength)

	m, details, err := s.FindByFolio(ctx, folio)
	require.NoError(t, err)
	require.Equal(t, folio, m.Folio)
	require.Equal(t, sampleDraft().Totals, m.Totals)
	require.Equal(t, sampleDraft().Patient, m.Patient)

	codes := make([]string, 0, len(details))
	for _, d := range details {
		codes = append(codes, d.Code)
	}
	require.ElementsMatch(t, []string{"001", "002"}, codes)
}

func TestFindByFolioIsCaseNormalized(t *testing.T) {
	s := NewQuoteStore()
	ctx := context.Background()

	folio, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)

	m, _, err := s.FindByFolio(ctx, "  "+strings.ToLower(folio)+" ")
	require.NoError(t, err)
	require.Equal(t, folio, m.Folio)
}

func TestFindByFolioNotFound(t *testing.T) {
	s := NewQuoteStore()

	_, _, err := s.FindByFolio(context.Background(), "ZZZZZZZZ")
	require.ErrorIs(t, err, quote.ErrNotFound)
}

func TestSaveEmptySelectionRejected(t *testing.T) {
	s := NewQuoteStore()
	d := sampleDraft()
	d.Lines = nil

	_, err := s.Save(context.Background(), d)
	require.ErrorIs(t, err, quote.ErrEmptySelection)
	require.Zero(t, s.Len())
}

func TestSaveFailureLeavesNothingVisible(t *testing.T) {
	s := NewQuoteStore()
	s.FailSave = true

	_, err := s.Save(context.Background(), sampleDraft())
	require.ErrorIs(t, err, quote.ErrPersistence)
	require.Zero(t, s.Len(), "a failed save must not leave a partially-detailed quote")

	s.FailSave = false
	folio, err := s.Save(context.Background(), sampleDraft())
	require.NoError(t, err)
	_, details, err := s.FindByFolio(context.Background(), folio)
	require.NoError(t, err)
	require.Len(t, details, 2)
}

func TestSaveRetriesOnFolioCollision(t *testing.T) {
	s := NewQuoteStore()
	ctx := context.Background()

	first, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)

	// Force the generator to emit the taken folio twice before a fresh one.
	emitted := 0
	s.NewFolio = func() (string, error) {
		emitted++
		if emitted <= 2 {
			return first, nil
		}
		return quote.NewFolio()
	}

	second, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.GreaterOrEqual(t, emitted, 3)
}

func TestSaveGivesUpAfterRepeatedCollisions(t *testing.T) {
	s := NewQuoteStore()
	ctx := context.Background()

	first, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)

	s.NewFolio = func() (string, error) { return first, nil }

	_, err = s.Save(ctx, sampleDraft())
	require.ErrorIs(t, err, quote.ErrFolioCollision)
	require.Equal(t, 1, s.Len())
}
