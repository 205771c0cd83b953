package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/njofredev/cotizador-examenes/internal/app/config"
	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
	"github.com/njofredev/cotizador-examenes/internal/domain/quote"
	"github.com/njofredev/cotizador-examenes/internal/domain/quote/pdf"
	"github.com/njofredev/cotizador-examenes/internal/infra/mail"
)

type Handlers struct {
	Catalog *catalog.Loader
	Quotes  quote.Repository
	PDF     pdf.Generator
	Mail    mail.Sender
	Cfg     config.Config
	Log     zerolog.Logger

	validate *validator.Validate
	now      func() time.Time
}

func New(cat *catalog.Loader, quotes quote.Repository, gen pdf.Generator, sender mail.Sender, cfg config.Config, log zerolog.Logger) *Handlers {
	return &Handlers{
		Catalog:  cat,
		Quotes:   quotes,
		PDF:      gen,
		Mail:     sender,
		Cfg:      cfg,
		Log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}
