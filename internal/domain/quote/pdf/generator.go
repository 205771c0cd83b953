package pdf

import "github.com/njofredev/cotizador-examenes/internal/domain/quote"

// Generator renders a quotation document to an opaque artifact. The core
// never depends on the layout inside.
type Generator interface {
	Generate(doc quote.Document) ([]byte, error)
}
