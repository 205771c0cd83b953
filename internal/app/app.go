package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/njofredev/cotizador-examenes/internal/app/config"
	apphttp "github.com/njofredev/cotizador-examenes/internal/app/http"
	"github.com/njofredev/cotizador-examenes/internal/app/http/handlers"
	"github.com/njofredev/cotizador-examenes/internal/domain/catalog"
	pdfgen "github.com/njofredev/cotizador-examenes/internal/domain/quote/pdf/gofpdf"
	"github.com/njofredev/cotizador-examenes/internal/infra/db/postgres"
	"github.com/njofredev/cotizador-examenes/internal/infra/mail"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("config")
	}

	logger := newLogger(cfg.LogFormat, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("migrate")
		}
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	defer db.Close()

	loader := catalog.NewLoader(cfg.CatalogPath)
	if c, err := loader.Load(); err != nil {
		// The service still starts; the catalog may appear later and every
		// request re-checks the source.
		logger.Warn().Err(err).Str("path", cfg.CatalogPath).Msg("catalog not loaded yet")
	} else {
		logger.Info().Int("entries", c.Len()).Str("path", cfg.CatalogPath).Msg("catalog loaded")
	}

	var sender mail.Sender = mail.Disabled{}
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		logger.Warn().Msg("SMTP_HOST not set, email delivery disabled")
	}

	h := handlers.New(
		loader,
		postgres.NewQuoteRepo(db),
		pdfgen.New(cfg.ClinicName),
		sender,
		cfg,
		logger,
	)
	router := apphttp.NewRouter(h, cfg, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
	}

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server")
	}
}

func newLogger(format, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if strings.EqualFold(format, "console") || strings.EqualFold(format, "text") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
