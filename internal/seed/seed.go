package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/sempozyum/internal/app/models"
	appRepos "github.com/yigit/sempozyum/internal/app/repositories"
	"github.com/yigit/sempozyum/internal/config"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/auth"
)

// UserCreator is the user persistence the seeder needs
type UserCreator interface {
	GetUserByEmail(ctx context.Context, email string) (*appModels.User, error)
	CreateUser(ctx context.Context, user *appModels.User) (int64, error)
}

// SymposiumCreator is the symposium persistence the seeder needs
type SymposiumCreator interface {
	ListSymposia(ctx context.Context) ([]*appModels.Symposium, error)
	CreateSymposium(ctx context.Context, s *appModels.Symposium) (int64, error)
	ActivateSymposium(ctx context.Context, id int64) error
}

// CreateDefaultData creates the administrator account and, on an empty
// database, a first active symposium.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg config.SeedConfig, lgr zerolog.Logger) error {
	return Run(ctx, appRepos.NewUserRepository(dbPool), appRepos.NewSymposiumRepository(dbPool), cfg, lgr, time.Now())
}

// Run seeds through the given stores; each step is idempotent
func Run(ctx context.Context, users UserCreator, symposia SymposiumCreator, cfg config.SeedConfig, lgr zerolog.Logger, now time.Time) error {
	lgr.Info().Msg("Checking/Creating default data (admin, symposium)...")
	var finalErr error

	if err := ensureAdmin(ctx, users, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	}
	if err := ensureSymposium(ctx, symposia, lgr, now); err != nil {
		lgr.Error().Err(err).Msg("Error creating default symposium")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func ensureAdmin(ctx context.Context, users UserCreator, cfg config.SeedConfig, lgr zerolog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		lgr.Warn().Msg("Seed admin credentials not configured, skipping admin creation")
		return nil
	}

	_, err := users.GetUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	admin := &appModels.User{
		Email:     cfg.AdminEmail,
		Password:  hash,
		FirstName: "Sempozyum",
		LastName:  "Yöneticisi",
		RoleType:  appModels.RoleAdmin,
		IsActive:  true,
	}
	if _, err := users.CreateUser(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return err
	}
	lgr.Info().Str("email", cfg.AdminEmail).Msg("Admin user created")
	return nil
}

func ensureSymposium(ctx context.Context, symposia SymposiumCreator, lgr zerolog.Logger, now time.Time) error {
	existing, err := symposia.ListSymposia(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	// Placeholder edition six months out; the admin edits it before opening submissions
	y, m, d := now.UTC().AddDate(0, 6, 0).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	deadline := start.AddDate(0, -2, 0).Add(24*time.Hour - time.Second)

	s := &appModels.Symposium{
		Title:              fmt.Sprintf("Uluslararası Sempozyum %d", start.Year()),
		Year:               start.Year(),
		StartDate:          start,
		EndDate:            end,
		SubmissionDeadline: &deadline,
	}
	id, err := symposia.CreateSymposium(ctx, s)
	if err != nil {
		return err
	}
	if err := symposia.ActivateSymposium(ctx, id); err != nil {
		return err
	}
	lgr.Info().Int64("symposiumID", id).Int("year", s.Year).Msg("Default symposium created and activated")
	return nil
}
