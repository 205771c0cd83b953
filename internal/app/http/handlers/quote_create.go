package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

type patientRequest struct {
	Name         string `json:"name" validate:"required,min=3"`
	DocumentType string `json:"document_type" validate:"required,oneof=rut pasaporte"`
	DocumentID   string `json:"document_id" validate:"required"`
	BirthDate    string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type createQuoteRequest struct {
	Patient   patientRequest `json:"patient" validate:"required"`
	Codes     []string       `json:"codes"`
	SendEmail bool           `json:"send_email"`
}

type lineResponse struct {
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	Fonasa               int64  `json:"fonasa"`
	Copago               int64  `json:"copago"`
	ParticularGeneral    int64  `json:"particular_general"`
	ParticularPreferente int64  `json:"particular_preferente"`
}

type totalsResponse struct {
	Fonasa               int64 `json:"fonasa"`
	Copago               int64 `json:"copago"`
	ParticularGeneral    int64 `json:"particular_general"`
	ParticularPreferente int64 `json:"particular_preferente"`
}

type emailResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type createQuoteResponse struct {
	Folio     string         `json:"folio"`
	CreatedAt time.Time      `json:"created_at"`
	Lines     []lineResponse `json:"lines"`
	Totals    totalsResponse `json:"totals"`
	Email     *emailResult   `json:"email,omitempty"`
}

// CreateQuote runs the full workflow: build from the catalog snapshot,
// persist master + details, render the PDF, and email it when requested.
// A delivery failure is reported in the response but the quote stays saved.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "BAD_REQUEST", "cuerpo JSON inválido")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	patient, err := req.Patient.toDomain()
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	cat, err := h.Catalog.Load()
	if err != nil {
		h.writeError(w, err)
		return
	}

	draft, err := quote.Build(cat, req.Codes, patient, h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	folio, err := h.Quotes.Save(r.Context(), draft)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Log.Info().Str("folio", folio).Int("lines", len(draft.Lines)).Msg("quote saved")

	resp := createQuoteResponse{
		Folio:     folio,
		CreatedAt: draft.CreatedAt,
		Lines:     toLineResponses(draft.Lines),
		Totals:    toTotalsResponse(draft.Totals),
	}

	if req.SendEmail {
		if patient.Email == "" {
			resp.Email = &emailResult{Sent: false, Error: "la cotización no tiene email del paciente"}
		} else {
			doc := draft.Document(folio)
			result := h.deliver(r.Context(), doc, patient.Email)
			resp.Email = &result
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (p patientRequest) toDomain() (quote.Patient, error) {
	var birth time.Time
	if p.BirthDate != "" {
		var err error
		birth, err = time.Parse("2006-01-02", p.BirthDate)
		if err != nil {
			return quote.Patient{}, err
		}
	}
	return quote.Patient{
		Name:         p.Name,
		DocumentType: quote.DocumentType(p.DocumentType),
		DocumentID:   p.DocumentID,
		BirthDate:    birth,
		Email:        p.Email,
	}, nil
}

func toLineResponses(lines []quote.Line) []lineResponse {
	out := make([]lineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineResponse{
			Code:                 l.Code,
			Name:                 l.Name,
			Fonasa:               l.Fonasa,
			Copago:               l.Copago,
			ParticularGeneral:    l.ParticularGeneral,
			ParticularPreferente: l.ParticularPreferente,
		})
	}
	return out
}

func toTotalsResponse(t quote.Totals) totalsResponse {
	return totalsResponse{
		Fonasa:               t.Fonasa,
		Copago:               t.Copago,
		ParticularGeneral:    t.ParticularGeneral,
		ParticularPreferente: t.ParticularPreferente,
	}
}
