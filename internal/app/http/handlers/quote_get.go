package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

type detailResponse struct {
	Position int    `json:"position"`
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Copago   int64  `json:"copago"`
}

type getQuoteResponse struct {
	Folio     string           `json:"folio"`
	Patient   patientResponse  `json:"patient"`
	CreatedAt time.Time        `json:"created_at"`
	Totals    totalsResponse   `json:"totals"`
	Details   []detailResponse `json:"details"`
}

type patientResponse struct {
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	DocumentID   string `json:"document_id"`
	BirthDate    string `json:"birth_date,omitempty"`
	Email        string `json:"email,omitempty"`
}

// GetQuote looks a saved quotation up by folio.
func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	folio := chi.URLParam(r, "folio")

	m, details, err := h.Quotes.FindByFolio(r.Context(), folio)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(details) == 0 {
		// Valid but unusual: the master exists with no lines.
		h.Log.Warn().Str("folio", m.Folio).Msg("quote has no detail rows")
	}

	resp := getQuoteResponse{
		Folio:     m.Folio,
		Patient:   toPatientResponse(m.Patient),
		CreatedAt: m.CreatedAt,
		Totals:    toTotalsResponse(m.Totals),
		Details:   make([]detailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, detailResponse{
			Position: d.Position,
			Code:     d.Code,
			Name:     d.Name,
			Copago:   d.Copago,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetQuotePDF re-renders the document for a saved quotation (reprint).
func (h *Handlers) GetQuotePDF(w http.ResponseWriter, r *http.Request) {
	folio := chi.URLParam(r, "folio")

	doc, err := h.documentByFolio(r.Context(), folio)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.PDF.Generate(doc)
	if err != nil {
		h.Log.Error().Err(err).Str("folio", doc.Folio).Msg("pdf generation failed")
		writeErrorCode(w, http.StatusInternalServerError, "RENDER_ERROR", "no fue posible generar el documento")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func toPatientResponse(p quote.Patient) patientResponse {
	out := patientResponse{
		Name:         p.Name,
		DocumentType: string(p.DocumentType),
		DocumentID:   p.DocumentID,
		Email:        p.Email,
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	return out
}
