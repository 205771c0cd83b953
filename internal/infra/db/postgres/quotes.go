package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

const (
	// 23505 = unique_violation
	pgUniqueViolation = "23505"

	folioAttempts  = 5
	defaultTimeout = 10 * time.Second
)

// QuoteRepo implements quote.Repository on top of the cotizaciones /
// detalle_cotizaciones tables.
type QuoteRepo struct {
	db      *DB
	timeout time.Duration
}

func NewQuoteRepo(db *DB) *QuoteRepo {
	return &QuoteRepo{db: db, timeout: defaultTimeout}
}

// Save mints a folio and writes the master row plus one detail row per line
// in a single transaction. A primary-key conflict on the folio means another
// writer won the same token; generation is retried a few times before the
// collision is surfaced.
func (r *QuoteRepo) Save(ctx context.Context, draft quote.Draft) (string, error) {
	if len(draft.Lines) == 0 {
		return "", quote.ErrEmptySelection
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for attempt := 0; attempt < folioAttempts; attempt++ {
		folio, err := quote.NewFolio()
		if err != nil {
			return "", fmt.Errorf("%w: %w", quote.ErrPersistence, err)
		}
		err = r.insert(ctx, folio, draft)
		if err == nil {
			return folio, nil
		}
		if isFolioConflict(err) {
			continue
		}
		return "", fmt.Errorf("%w: %w", quote.ErrPersistence, err)
	}
	return "", quote.ErrFolioCollision
}

func (r *QuoteRepo) insert(ctx context.Context, folio string, draft quote.Draft) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var birth any
	if !draft.Patient.BirthDate.IsZero() {
		birth = draft.Patient.BirthDate
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO cotizaciones (
			folio, nombre_paciente, tipo_documento, numero_documento,
			fecha_nacimiento, email, fecha_creacion,
			total_fonasa, total_copago, total_particular_general, total_particular_preferencial
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)`,
		folio,
		draft.Patient.Name,
		string(draft.Patient.DocumentType),
		draft.Patient.DocumentID,
		birth,
		draft.Patient.Email,
		draft.CreatedAt,
		draft.Totals.Fonasa,
		draft.Totals.Copago,
		draft.Totals.ParticularGeneral,
		draft.Totals.ParticularPreferente,
	)
	if err != nil {
		return err
	}

	for i, line := range draft.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO detalle_cotizaciones (
				folio_cotizacion, posicion, codigo_examen, nombre_examen, valor_copago
			) VALUES ($1, $2, $3, $4, $5)`,
			folio, i, line.Code, line.Name, line.Copago,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// FindByFolio loads a master and its ordered detail rows. Legacy detail
// rows without the denormalized columns come back with empty name / zero
// copay.
func (r *QuoteRepo) FindByFolio(ctx context.Context, folio string) (quote.Master, []quote.Detail, error) {
	folio = quote.NormalizeFolio(folio)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		m         quote.Master
		docType   string
		birthDate *time.Time
		email     *string
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT folio, nombre_paciente, tipo_documento, numero_documento,
		       fecha_nacimiento, email, fecha_creacion,
		       total_fonasa, total_copago, total_particular_general, total_particular_preferencial
		FROM cotizaciones WHERE folio = $1`, folio,
	).Scan(
		&m.Folio, &m.Patient.Name, &docType, &m.Patient.DocumentID,
		&birthDate, &email, &m.CreatedAt,
		&m.Totals.Fonasa, &m.Totals.Copago, &m.Totals.ParticularGeneral, &m.Totals.ParticularPreferente,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return quote.Master{}, nil, quote.ErrNotFound
	}
	if err != nil {
		return quote.Master{}, nil, fmt.Errorf("%w: %w", quote.ErrPersistence, err)
	}
	m.Patient.DocumentType = quote.DocumentType(docType)
	if birthDate != nil {
		m.Patient.BirthDate = *birthDate
	}
	if email != nil {
		m.Patient.Email = *email
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT folio_cotizacion, COALESCE(posicion, 0), codigo_examen,
		       COALESCE(nombre_examen, ''), COALESCE(valor_copago, 0)
		FROM detalle_cotizaciones
		WHERE folio_cotizacion = $1
		ORDER BY posicion NULLS LAST, id`, folio,
	)
	if err != nil {
		return quote.Master{}, nil, fmt.Errorf("%w: %w", quote.ErrPersistence, err)
	}
	defer rows.Close()

	var details []quote.Detail
	for rows.Next() {
		var d quote.Detail
		if err := rows.Scan(&d.Folio, &d.Position, &d.Code, &d.Name, &d.Copago); err != nil {
			return quote.Master{}, nil, fmt.Errorf("%w: %w", quote.ErrPersistence, err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return quote.Master{}, nil, fmt.Errorf("%w: %w", quote.ErrPersistence, err)
	}

	return m, details, nil
}

func isFolioConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.TableName == "cotizaciones"
}
