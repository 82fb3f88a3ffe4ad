package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	"github.com/campuslib/library_management_app/internal/core/services"
	"github.com/campuslib/library_management_app/internal/handlers"
	"github.com/campuslib/library_management_app/internal/middleware"
	"github.com/campuslib/library_management_app/internal/platform/certificate"
	"github.com/campuslib/library_management_app/internal/platform/config"
	"github.com/campuslib/library_management_app/internal/platform/email"
	"github.com/campuslib/library_management_app/internal/repositories/database/pgsql"
	"github.com/campuslib/library_management_app/internal/utils"
	"github.com/campuslib/library_management_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Library Management API
// @version 1.0
// @description Back office API for the campus library: student roster, departments, batches, book categories and the clearance certification workflow.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	// Certificate renderer writes into the statically served documents dir
	renderer := certificate.NewFPDFRenderer(cfg.DocumentsDir, cfg.CertLogoPath)

	smtpCfg := email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	var notifier = email.NewNoopDispatcher()
	if smtpCfg.IsConfigured() {
		notifier = email.NewSMTPDispatcher(smtpCfg)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, renderer, notifier)

	if err := bootstrapAdmin(context.Background(), cfg, repos.UserRepo, logger); err != nil {
		logger.Error("Failed to bootstrap admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Generated certificates and site assets are served statically
	r.Static("/documents", cfg.DocumentsDir)
	r.Static("/public", cfg.PublicDir)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// bootstrapAdmin creates the first admin account when none exists yet,
// using the ADMIN_EMAIL / ADMIN_PASSWORD settings. Without it a fresh
// deployment has no account that can log in.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, logger *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := userRepo.FindFirstByRole(ctx, domain.RoleAdmin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	adminID := uuid.NewString()
	admin := domain.User{
		UserID:        adminID,
		Name:          "Library Admin",
		Email:         cfg.AdminEmail,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		AccountStatus: domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	if err := userRepo.SaveUser(ctx, admin); err != nil {
		return err
	}
	logger.Info("Bootstrapped admin account", slog.String("email", cfg.AdminEmail))
	return nil
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
