package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/njofredev/cotizador-examenes/internal/app/config"
	"github.com/njofredev/cotizador-examenes/internal/app/http/handlers"
	"github.com/njofredev/cotizador-examenes/internal/app/http/middleware"
)

func NewRouter(h *handlers.Handlers, cfg config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		if cfg.InternalToken != "" {
			r.Use(middleware.InternalAuth(cfg.InternalToken))
		}

		r.Get("/catalog", h.ListCatalog)

		r.Post("/quotes", h.CreateQuote)
		r.Get("/quotes/{folio}", h.GetQuote)
		r.Get("/quotes/{folio}/pdf", h.GetQuotePDF)
		r.Post("/quotes/{folio}/send", h.SendQuote)
	})

	return r
}
