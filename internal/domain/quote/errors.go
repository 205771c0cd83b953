package quote

import "errors"

// Failure taxonomy for the quotation workflow. Callers match with
// errors.Is; underlying causes stay reachable through %w wrapping.
var (
	// ErrEmptySelection: no exams chosen; persistence must not be reached.
	ErrEmptySelection = errors.New("empty selection")

	// ErrSelectionInvalid: a selected code is not in the loaded catalog.
	ErrSelectionInvalid = errors.New("selection invalid")

	// ErrFolioCollision: a freshly generated folio already exists. The
	// repository retries generation; surfacing this means retries ran out.
	ErrFolioCollision = errors.New("folio collision")

	// ErrNotFound: lookup by folio matched nothing. A normal outcome, not
	// a system failure.
	ErrNotFound = errors.New("quote not found")

	// ErrPersistence: the transactional write failed and was rolled back;
	// the quote is not saved.
	ErrPersistence = errors.New("persistence failed")

	// ErrDelivery: the notification failed after a successful save; the
	// quote remains valid and retrievable by folio.
	ErrDelivery = errors.New("delivery failed")
)
