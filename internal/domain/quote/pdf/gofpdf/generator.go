package gofpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

// Generator renders the quotation PDF: header with folio and patient
// identity, one table row per exam with the four tariff values, and the
// four totals. Long catalogs paginate via the auto page break.
type Generator struct {
	ClinicName string
}

func New(clinicName string) *Generator {
	if clinicName == "" {
		clinicName = "Policlínico Tabancura"
	}
	return &Generator{ClinicName: clinicName}
}

const (
	colCode = 18.0
	colName = 72.0
	colVal  = 25.0
)

func (g *Generator) Generate(doc quote.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Cotización de Exámenes", true)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("COTIZACIÓN DE EXÁMENES"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(g.ClinicName), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Folio: %s", doc.Folio)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fecha: %s", doc.CreatedAt.Format("02-01-2006 15:04"))), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Paciente: %s", doc.Patient.Name)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %s", documentLabel(doc.Patient.DocumentType), doc.Patient.DocumentID)), "", 1, "", false, 0, "")
	if !doc.Patient.BirthDate.IsZero() {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fecha de nacimiento: %s", doc.Patient.BirthDate.Format("02-01-2006"))), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	g.tableHeader(pdf, tr)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range doc.Lines {
		pdf.CellFormat(colCode, 6, line.Code, "B", 0, "", false, 0, "")
		pdf.CellFormat(colName, 6, tr(trim(line.Name, 45)), "B", 0, "", false, 0, "")
		pdf.CellFormat(colVal, 6, quote.FormatCLP(line.Fonasa), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colVal, 6, quote.FormatCLP(line.Copago), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colVal, 6, quote.FormatCLP(line.ParticularGeneral), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colVal, 6, quote.FormatCLP(line.ParticularPreferente), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colCode+colName, 7, "TOTALES", "", 0, "", false, 0, "")
	pdf.CellFormat(colVal, 7, quote.FormatCLP(doc.Totals.Fonasa), "T", 0, "R", false, 0, "")
	pdf.CellFormat(colVal, 7, quote.FormatCLP(doc.Totals.Copago), "T", 0, "R", false, 0, "")
	pdf.CellFormat(colVal, 7, quote.FormatCLP(doc.Totals.ParticularGeneral), "T", 0, "R", false, 0, "")
	pdf.CellFormat(colVal, 7, quote.FormatCLP(doc.Totals.ParticularPreferente), "T", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Documento generado el %s. Valores referenciales, sujetos a confirmación.", time.Now().Format("02-01-2006 15:04"))), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) tableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colCode, 7, tr("Código"), "B", 0, "", false, 0, "")
	pdf.CellFormat(colName, 7, "Examen", "B", 0, "", false, 0, "")
	pdf.CellFormat(colVal, 7, "Fonasa", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colVal, 7, "Copago", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colVal, 7, "Part. Gral", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colVal, 7, "Part. Pref", "B", 1, "R", false, 0, "")
}

func documentLabel(t quote.DocumentType) string {
	if t == quote.DocumentPasaporte {
		return "Pasaporte"
	}
	return "RUT"
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
