//go:build integration

// Package testutil starts throwaway backing services for integration tests.
package testutil

import (
	"context"
	"testing"

	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/pkg/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// Postgres starts a postgres container, migrates the schema and returns a
// connection. The container is removed when the test ends.
func Postgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("store_rating"),
		tcPostgres.WithUsername("postgres"),
		tcPostgres.WithPassword("postgres"),
		tcPostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Connect(database.Options{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Store{}, &entity.Rating{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with the given role and a throwaway password hash.
func CreateUser(t *testing.T, db *gorm.DB, email string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:     "Integration Test Account",
		Email:    email,
		Password: "x",
		Address:  "1 Test Street",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
