package quote

import (
	"time"

	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
)

// DocumentType identifies the patient's identity document.
type DocumentType string

const (
	DocumentRUT       DocumentType = "rut"
	DocumentPasaporte DocumentType = "pasaporte"
)

// Valid reports whether t is one of the accepted document types.
func (t DocumentType) Valid() bool {
	return t == DocumentRUT || t == DocumentPasaporte
}

// Patient holds the identity fields captured for one quotation.
type Patient struct {
	Name         string
	DocumentType DocumentType
	DocumentID   string
	BirthDate    time.Time
	Email        string
}

// Line is one quoted exam with its four tariff values.
type Line struct {
	Code                 string
	Name                 string
	Fonasa               int64
	Copago               int64
	ParticularGeneral    int64
	ParticularPreferente int64
}

// Totals aggregates the four tariff columns over all lines.
type Totals struct {
	Fonasa               int64
	Copago               int64
	ParticularGeneral    int64
	ParticularPreferente int64
}

// Draft is a computed quotation that has not been persisted yet. It carries
// no folio; the repository assigns one at save time.
type Draft struct {
	Patient   Patient
	CreatedAt time.Time
	Lines     []Line
	Totals    Totals
}

// Master is the persisted quotation header.
type Master struct {
	Folio     string
	Patient   Patient
	CreatedAt time.Time
	Totals    Totals
}

// Detail is one persisted line, linked to its master by folio. Name and
// Copago are denormalized copies; rows written before the superset schema
// read back as empty/zero.
type Detail struct {
	Folio    string
	Position int
	Code     string
	Name     string
	Copago   int64
}

// LineFromEntry copies a catalog entry into a quote line.
func LineFromEntry(e catalog.Entry) Line {
	return Line{
		Code:                 e.Code,
		Name:                 e.Name,
		Fonasa:               e.Fonasa,
		Copago:               e.Copago,
		ParticularGeneral:    e.ParticularGeneral,
		ParticularPreferente: e.ParticularPreferente,
	}
}
