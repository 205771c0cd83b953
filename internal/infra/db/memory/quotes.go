// Package memory holds the in-process quote.Repository the tests run
// against. It obeys the same contract as the postgres implementation:
// atomic saves, folio retry on collision, ErrNotFound on missing folios.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

const folioAttempts = 5

type QuoteStore struct {
	mu      sync.Mutex
	masters map[string]quote.Master
	details map[string][]quote.Detail

	// NewFolio is swappable so tests can force collisions.
	NewFolio func() (string, error)

	// FailSave simulates a write failure after the master insert but
	// before the details commit; the transaction contract demands that no
	// rows stay visible.
	FailSave bool
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		masters:  make(map[string]quote.Master),
		details:  make(map[string][]quote.Detail),
		NewFolio: quote.NewFolio,
	}
}

func (s *QuoteStore) Save(ctx context.Context, draft quote.Draft) (string, error) {
	if len(draft.Lines) == 0 {
		return "", quote.ErrEmptySelection
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", quote.ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var folio string
	for attempt := 0; ; attempt++ {
		if attempt == folioAttempts {
			return "", quote.ErrFolioCollision
		}
		f, err := s.NewFolio()
		if err != nil {
			return "", fmt.Errorf("%w: %w", quote.ErrPersistence, err)
		}
		f = quote.NormalizeFolio(f)
		if _, taken := s.masters[f]; !taken {
			folio = f
			break
		}
	}

	// Stage everything before touching the maps so a simulated failure
	// leaves no partial quote behind.
	master := quote.Master{
		Folio:     folio,
		Patient:   draft.Patient,
		CreatedAt: draft.CreatedAt,
		Totals:    draft.Totals,
	}
	details := make([]quote.Detail, 0, len(draft.Lines))
	for i, line := range draft.Lines {
		details = append(details, quote.Detail{
			Folio:    folio,
			Position: i,
			Code:     line.Code,
			Name:     line.Name,
			Copago:   line.Copago,
		})
	}

	if s.FailSave {
		return "", fmt.Errorf("%w: simulated write failure", quote.ErrPersistence)
	}

	s.masters[folio] = master
	s.details[folio] = details
	return folio, nil
}

func (s *QuoteStore) FindByFolio(ctx context.Context, folio string) (quote.Master, []quote.Detail, error) {
	if err := ctx.Err(); err != nil {
		return quote.Master{}, nil, fmt.Errorf("%w: %w", quote.ErrPersistence, err)
	}
	folio = quote.NormalizeFolio(folio)

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.masters[folio]
	if !ok {
		return quote.Master{}, nil, quote.ErrNotFound
	}
	details := make([]quote.Detail, len(s.details[folio]))
	copy(details, s.details[folio])
	return m, details, nil
}

// Len reports how many quotes the store holds.
func (s *QuoteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.masters)
}
