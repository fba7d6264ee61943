// Command seedadmin provisions (or re-provisions) an admin account. Admin
// users are managed out-of-band; the web application itself never writes to
// the users table.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"givebox/internal/infra"
	"givebox/internal/sqlinline"
)

func main() {
	var (
		name     = flag.String("name", "Admin", "display name for the admin user")
		email    = flag.String("email", "", "admin email (required)")
		password = flag.String("password", "", "admin password (required)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if *email == "" || *password == "" {
		logger.Fatal().Msg("-email and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash password failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	var id string
	row := runner.QueryRow(ctx, sqlinline.QUpsertAdminUser, *name, *email, string(hash))
	if err := row.Scan(&id); err != nil {
		logger.Fatal().Err(err).Msg("upsert admin failed")
	}

	logger.Info().Str("id", id).Str("email", *email).Msg("admin user provisioned")
}
