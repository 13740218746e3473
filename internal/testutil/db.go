// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/sangkips/invoice-ticket-api/internal/config"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with the schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLiteDB(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser stores a user with the given login.
func CreateUser(t testing.TB, db *gorm.DB, name, login string) *entity.User {
	t.Helper()

	user := &entity.User{Name: name, Login: login, Password: "not-a-real-hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Date returns a UTC timestamp.
func Date(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}
