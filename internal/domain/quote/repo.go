package quote

import "context"

// Repository persists quotation masters and their detail lines.
//
// Save assigns a fresh folio to the draft and writes one master row plus one
// detail row per line inside a single transaction; on any failure nothing is
// visible and the error wraps ErrPersistence. Implementations retry folio
// generation on a uniqueness conflict before giving up with ErrFolioCollision.
//
// FindByFolio returns ErrNotFound when no master matches. A found master
// with zero detail rows is returned as-is with an empty slice; the caller
// decides how loudly to complain.
type Repository interface {
	Save(ctx context.Context, draft Draft) (string, error)
	FindByFolio(ctx context.Context, folio string) (Master, []Detail, error)
}
