package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ErrConfigurationMissing means neither DATABASE_URL nor a complete set of
// POSTGRES_* parts was provided.
var ErrConfigurationMissing = errors.New("configuration missing")

// Config holds everything the service reads from the environment.
type Config struct {
	HTTPAddr      string
	DatabaseURL   string
	CatalogPath   string
	ClinicName    string
	InternalToken string

	CORSAllowOrigin string
	LogLevel        string
	LogFormat       string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	RequestTimeout time.Duration
	MigrateOnStart bool
}

// Load reads configuration from the environment and an optional .env file.
// The connection string precedence is: explicit DATABASE_URL first, then a
// DSN composed from the POSTGRES_* parts (with sslmode=require, matching
// the managed deployments this tool talks to).
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Config{
		HTTPAddr:        valueOrDefault(k.String("HTTP_ADDR"), ":8080"),
		DatabaseURL:     strings.TrimSpace(k.String("DATABASE_URL")),
		CatalogPath:     valueOrDefault(k.String("CATALOG_PATH"), "aranceles.csv"),
		ClinicName:      valueOrDefault(k.String("CLINIC_NAME"), "Policlínico Tabancura"),
		InternalToken:   k.String("INTERNAL_TOKEN"),
		CORSAllowOrigin: valueOrDefault(k.String("CORS_ALLOW_ORIGIN"), "*"),
		LogLevel:        valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:       valueOrDefault(k.String("LOG_FORMAT"), "json"),
		SMTPHost:        k.String("SMTP_HOST"),
		SMTPPort:        valueOrDefault(k.String("SMTP_PORT"), "587"),
		SMTPUsername:    k.String("SMTP_USERNAME"),
		SMTPPassword:    k.String("SMTP_PASSWORD"),
		MailFrom:        valueOrDefault(k.String("MAIL_FROM"), "cotizaciones@tabancura.cl"),
		RequestTimeout:  parseDuration(k.String("REQUEST_TIMEOUT"), "30s"),
		MigrateOnStart:  parseBool(valueOrDefault(k.String("MIGRATE_ON_START"), "true")),
	}

	if cfg.DatabaseURL == "" {
		dsn, err := composeDSN(k)
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseURL = dsn
	}

	return cfg, nil
}

// composeDSN builds the fallback connection string from POSTGRES_* parts.
func composeDSN(k *koanf.Koanf) (string, error) {
	host := strings.TrimSpace(k.String("POSTGRES_HOST"))
	database := strings.TrimSpace(k.String("POSTGRES_DATABASE"))
	user := strings.TrimSpace(k.String("POSTGRES_USER"))
	password := k.String("POSTGRES_PASSWORD")
	port := valueOrDefault(k.String("POSTGRES_PORT"), "5432")

	var missing []string
	if host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if database == "" {
		missing = append(missing, "POSTGRES_DATABASE")
	}
	if user == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: set DATABASE_URL or %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + database,
		RawQuery: "sslmode=require",
	}
	return u.String(), nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
