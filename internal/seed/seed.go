package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/opencampus/coursehub/internal/app/models"
	appRepos "github.com/opencampus/coursehub/internal/app/repositories"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
)

// CreateDefaultData creates the default accounts and a sample catalog if they
// don't exist. Errors are collected so a partial seed does not block startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (accounts, sample catalog)...")
	var finalErr error

	// --- Default accounts --- //
	defaultUsers := []struct {
		login    string
		password string
		role     appModels.RoleType
	}{
		{login: "admin", password: "admin", role: appModels.RoleAdmin},
		{login: "user", password: "user", role: appModels.RoleUser},
	}

	for _, u := range defaultUsers {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Str("login", u.login).Msg("Error hashing default account password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		account := &appModels.User{
			Login:    u.login,
			Password: string(hashedPassword),
			RoleType: u.role,
			IsActive: true,
		}

		if err := userRepo.Create(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrLoginExists) {
				lgr.Debug().Str("login", u.login).Msg("Default account already exists, skipping")
				continue
			}
			lgr.Error().Err(err).Str("login", u.login).Msg("Error creating default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("login", u.login).Msg("Default account created")
	}

	// --- Sample catalog --- //
	// Seeded only on an empty programs table so restarts don't duplicate rows.
	existing, err := programRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing programs")
		return errors.Join(finalErr, err)
	}
	if len(existing) > 0 {
		lgr.Debug().Int("count", len(existing)).Msg("Programs already present, skipping sample catalog")
		return finalErr
	}

	csDescription := "Four year undergraduate program covering software and systems"
	csProgram := &appModels.Program{Name: "Computer Science", Description: &csDescription}
	if err := programRepo.Save(ctx, csProgram); err != nil {
		lgr.Error().Err(err).Msg("Error creating sample program")
		return errors.Join(finalErr, err)
	}

	sampleCourses := []appModels.Course{
		{ProgramID: csProgram.ID, Title: "Introduction to Programming"},
		{ProgramID: csProgram.ID, Title: "Data Structures"},
	}
	for i := range sampleCourses {
		if err := courseRepo.Save(ctx, &sampleCourses[i]); err != nil {
			lgr.Error().Err(err).Str("title", sampleCourses[i].Title).Msg("Error creating sample course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
