package quote

import "time"

// Document is the renderable view of a quotation: a folio-bearing header
// plus its line items. Both the create path (fresh draft + new folio) and
// the reprint path (persisted master + details) produce one.
type Document struct {
	Folio     string
	Patient   Patient
	CreatedAt time.Time
	Lines     []Line
	Totals    Totals
}

// Document binds a saved folio to the draft that produced it.
func (d Draft) Document(folio string) Document {
	return Document{
		Folio:     folio,
		Patient:   d.Patient,
		CreatedAt: d.CreatedAt,
		Lines:     d.Lines,
		Totals:    d.Totals,
	}
}

// DocumentFromRecords rebuilds the renderable document for a saved quote.
// Lines come from the stored detail rows, so a reprint shows exactly what
// was quoted even after the catalog moves. The resolver is consulted only
// for legacy rows persisted before the denormalized columns existed (empty
// name, zero copay); a legacy code the resolver no longer knows keeps just
// its code.
func DocumentFromRecords(m Master, details []Detail, resolve func(code string) (Line, bool)) Document {
	doc := Document{
		Folio:     m.Folio,
		Patient:   m.Patient,
		CreatedAt: m.CreatedAt,
		Totals:    m.Totals,
		Lines:     make([]Line, 0, len(details)),
	}
	for _, d := range details {
		if d.Name == "" && d.Copago == 0 && resolve != nil {
			if line, ok := resolve(d.Code); ok {
				doc.Lines = append(doc.Lines, line)
				continue
			}
		}
		doc.Lines = append(doc.Lines, Line{Code: d.Code, Name: d.Name, Copago: d.Copago})
	}
	return doc
}

// FileName is the download/attachment name for the rendered document.
func (d Document) FileName() string {
	return "cotizacion_" + d.Folio + ".pdf"
}
