package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sangkips/invoice-ticket-api/internal/config"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by cfg.Driver
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres", "":
		return NewPostgresDB(cfg)
	case "sqlite":
		return NewSQLiteDB(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q (use postgres or sqlite)", cfg.Driver)
	}
}

func gormConfig(cfg *config.DatabaseConfig) *gorm.Config {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Invoice{},
		&entity.Payment{},
		&entity.LineItem{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the administrator account when one is configured
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	if admin.Login == "" || admin.Password == "" {
		return nil
	}

	login := entity.NormalizeLogin(admin.Login)
	var existing entity.User
	err := db.Where("login = ?", login).First(&existing).Error
	if err == nil {
		slog.Info("admin user already exists", "login", login)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	user := entity.User{Name: name, Login: login, Password: hashed}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("admin user created", "login", login)
	return nil
}
