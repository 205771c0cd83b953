package handlers

import "net/http"

// Health reports liveness plus whether the catalog source is readable, so
// the operator sees a broken arancel file before the first quote fails.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	catalogOK := true
	if _, err := h.Catalog.Load(); err != nil {
		catalogOK = false
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"catalog": catalogOK,
	})
}
