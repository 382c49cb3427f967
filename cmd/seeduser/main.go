// Command seeduser creates or refreshes a login for local development.
//
//	SEED_EMAIL=nurse@example.org SEED_ROLE=staff go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"time"

	"github.com/Lahari-104/Mediguard/internal/config"
	"github.com/Lahari-104/Mediguard/internal/infra"
	"github.com/Lahari-104/Mediguard/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	email := envOr("SEED_EMAIL", "admin@mediguard.local")
	password := envOr("SEED_PASSWORD", "changeme123")
	role := model.UserRole(envOr("SEED_ROLE", string(model.RoleAdmin)))
	if !role.Valid() {
		log.Fatal().Str("role", string(role)).Msg("SEED_ROLE must be admin, staff or manufacturer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	user := model.User{
		Email:        email,
		Name:         envOr("SEED_NAME", "Seed User"),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	err = db.WithContext(context.Background()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "name", "role"}),
		}).
		Create(&user).Error
	if err != nil {
		log.Fatal().Err(err).Msg("upsert user")
	}
	log.Info().Str("email", email).Str("role", string(role)).Msg("seed user ready")
}
