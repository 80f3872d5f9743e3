package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/opencampus/coursehub/internal/app/controllers"
	appMigrations "github.com/opencampus/coursehub/internal/app/migrations"
	appRepos "github.com/opencampus/coursehub/internal/app/repositories"
	appRoutes "github.com/opencampus/coursehub/internal/app/routes"
	appServices "github.com/opencampus/coursehub/internal/app/services"
	"github.com/opencampus/coursehub/internal/config"
	"github.com/opencampus/coursehub/internal/db"
	appMiddleware "github.com/opencampus/coursehub/internal/middleware"
	pkgAuth "github.com/opencampus/coursehub/internal/pkg/auth"
	"github.com/opencampus/coursehub/internal/pkg/helpers"
	"github.com/opencampus/coursehub/internal/pkg/logger"
	"github.com/opencampus/coursehub/internal/pkg/searchindex"
	"github.com/opencampus/coursehub/internal/pkg/validation"
	"github.com/opencampus/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	ProgramService       appServices.ProgramService
	CourseService        appServices.CourseService
	EnrollmentService    appServices.EnrollmentService
	AuthController       *appControllers.AuthController
	ProgramController    *appControllers.ProgramController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	SearchIndex          *searchindex.Client
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupSearchIndex connects to the search index backend.
func SetupSearchIndex(cfg *config.Config, lgr zerolog.Logger) (*searchindex.Client, error) {
	lgr.Info().Str("url", cfg.SearchIndex.URL).Msg("Connecting to search index...")
	client, err := searchindex.NewClient(searchindex.Config{
		URL:        cfg.SearchIndex.URL,
		Password:   cfg.SearchIndex.Password,
		DB:         cfg.SearchIndex.DB,
		MaxRetries: cfg.SearchIndex.MaxRetries,
		PoolSize:   cfg.SearchIndex.PoolSize,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to search index")
		return nil, fmt.Errorf("failed to connect to search index: %w", err)
	}
	lgr.Info().Msg("Search index connection successfully established.")
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, searchIndex *searchindex.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, SearchIndex: searchIndex}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	courseValidator := validation.NewCourseValidator(validation.LogObserver{})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.ProgramService = appServices.NewProgramService(deps.Repos.ProgramRepository, searchIndex)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, searchIndex, courseValidator)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.EnrollmentRepository, searchIndex)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProgramController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.AuthMiddleware,
	)

	return router
}
