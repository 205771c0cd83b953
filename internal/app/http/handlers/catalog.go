package handlers

import (
	"net/http"

	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
)

type catalogEntryResponse struct {
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	Fonasa               int64  `json:"fonasa"`
	Copago               int64  `json:"copago"`
	ParticularGeneral    int64  `json:"particular_general"`
	ParticularPreferente int64  `json:"particular_preferente"`
}

// ListCatalog returns the price list, optionally filtered by ?q= over code
// and name. This backs the operator's exam picker.
func (h *Handlers) ListCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.Catalog.Load()
	if err != nil {
		h.writeError(w, err)
		return
	}

	entries := c.Search(r.URL.Query().Get("q"))
	out := make([]catalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toCatalogEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   c.Len(),
		"entries": out,
	})
}

func toCatalogEntryResponse(e catalog.Entry) catalogEntryResponse {
	return catalogEntryResponse{
		Code:                 e.Code,
		Name:                 e.Name,
		Fonasa:               e.Fonasa,
		Copago:               e.Copago,
		ParticularGeneral:    e.ParticularGeneral,
		ParticularPreferente: e.ParticularPreferente,
	}
}
