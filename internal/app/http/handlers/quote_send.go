package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
	"github.com/njofredev/cotizador-examenes/internal/infra/mail"
)

type sendQuoteRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// SendQuote re-sends the document for a saved quotation. The recipient
// defaults to the email stored with the quote; the request may override it.
func (h *Handlers) SendQuote(w http.ResponseWriter, r *http.Request) {
	folio := chi.URLParam(r, "folio")

	var req sendQuoteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorCode(w, http.StatusBadRequest, "BAD_REQUEST", "cuerpo JSON inválido")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			writeErrorCode(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
			return
		}
	}

	doc, err := h.documentByFolio(r.Context(), folio)
	if err != nil {
		h.writeError(w, err)
		return
	}

	to := req.Email
	if to == "" {
		to = doc.Patient.Email
	}
	if to == "" {
		writeErrorCode(w, http.StatusBadRequest, "BAD_REQUEST", "la cotización no tiene email y no se indicó uno")
		return
	}

	result := h.deliver(r.Context(), doc, to)
	status := http.StatusOK
	if !result.Sent {
		// The quote stays valid; only the delivery failed.
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]any{"folio": doc.Folio, "email": result})
}

// documentByFolio reconstructs a renderable document from the persisted
// master and detail rows, so the reprint matches the saved quote even if
// the catalog changed afterwards. Only legacy rows without the denormalized
// fields fall back to the current catalog.
func (h *Handlers) documentByFolio(ctx context.Context, folio string) (quote.Document, error) {
	m, details, err := h.Quotes.FindByFolio(ctx, folio)
	if err != nil {
		return quote.Document{}, err
	}

	cat, catErr := h.Catalog.Load()
	resolve := func(code string) (quote.Line, bool) {
		if catErr != nil {
			return quote.Line{}, false
		}
		e, ok := cat.Lookup(code)
		if !ok {
			return quote.Line{}, false
		}
		return quote.LineFromEntry(e), true
	}
	return quote.DocumentFromRecords(m, details, resolve), nil
}

// deliver renders the document and emails it. Failures map to ErrDelivery
// semantics: logged and reported, never fatal to the saved quote.
func (h *Handlers) deliver(ctx context.Context, doc quote.Document, to string) emailResult {
	out, err := h.PDF.Generate(doc)
	if err != nil {
		h.Log.Error().Err(err).Str("folio", doc.Folio).Msg("pdf generation failed")
		return emailResult{Sent: false, Error: fmt.Errorf("%w: %w", quote.ErrDelivery, err).Error()}
	}

	msg := mail.Message{
		To:      to,
		Subject: fmt.Sprintf("Cotización %s - %s", doc.Folio, h.Cfg.ClinicName),
		Body: fmt.Sprintf(
			"Estimado(a) %s:\n\nAdjuntamos su cotización folio %s por %d examen(es).\nTotal particular general: %s.\n\n%s",
			doc.Patient.Name, doc.Folio, len(doc.Lines),
			quote.FormatCLP(doc.Totals.ParticularGeneral), h.Cfg.ClinicName,
		),
		Attachments: []mail.Attachment{{
			Filename:    doc.FileName(),
			ContentType: "application/pdf",
			Content:     out,
		}},
	}
	if err := h.Mail.Send(ctx, msg); err != nil {
		h.Log.Error().Err(err).Str("folio", doc.Folio).Str("to", to).Msg("delivery failed")
		return emailResult{Sent: false, Error: fmt.Errorf("%w: %w", quote.ErrDelivery, err).Error()}
	}
	h.Log.Info().Str("folio", doc.Folio).Str("to", to).Msg("quote emailed")
	return emailResult{Sent: true}
}
