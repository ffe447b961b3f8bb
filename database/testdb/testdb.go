// Package testdb opens throwaway, migrated sqlite databases for tests.
package testdb

import (
	"fmt"
	"testing"

	"charsheet-restful/config"
	"charsheet-restful/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a migrated in-memory database private to the calling test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err, "open test database")
	require.NoError(t, database.Migrate(db), "migrate test database")

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
