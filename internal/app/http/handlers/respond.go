package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
)

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorInfo{Code: code, Message: message}})
}

// writeError maps the domain failure taxonomy onto HTTP statuses. Lookup
// misses are a normal outcome and get a distinct 404, not a 5xx.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quote.ErrNotFound):
		writeErrorCode(w, http.StatusNotFound, "NOT_FOUND", "no existe una cotización con ese folio")
	case errors.Is(err, quote.ErrEmptySelection):
		writeErrorCode(w, http.StatusUnprocessableEntity, "EMPTY_SELECTION", "debe seleccionar al menos un examen")
	case errors.Is(err, quote.ErrSelectionInvalid):
		writeErrorCode(w, http.StatusUnprocessableEntity, "SELECTION_INVALID", err.Error())
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		h.Log.Error().Err(err).Msg("catalog unavailable")
		writeErrorCode(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "el arancel no está disponible")
	case errors.Is(err, quote.ErrFolioCollision):
		h.Log.Error().Err(err).Msg("folio collision retries exhausted")
		writeErrorCode(w, http.StatusServiceUnavailable, "FOLIO_COLLISION", "no fue posible asignar un folio, reintente")
	case errors.Is(err, quote.ErrPersistence):
		h.Log.Error().Err(err).Msg("persistence failure")
		writeErrorCode(w, http.StatusInternalServerError, "PERSISTENCE_ERROR", "no fue posible guardar la cotización")
	default:
		h.Log.Error().Err(err).Msg("unhandled error")
		writeErrorCode(w, http.StatusInternalServerError, "INTERNAL", "error interno")
	}
}
