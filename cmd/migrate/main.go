// Command migrate applies the database schema without starting the server.
// Deployments that run with MIGRATE_ON_START=false use this from CI.
package main

import (
	"fmt"
	"os"

	"github.com/njofredev/cotizador-examenes/internal/app/config"
	"github.com/njofredev/cotizador-examenes/internal/infra/db/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied")
}
