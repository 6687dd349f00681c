package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/fiscal-compliance/pkg/database"
)

const migrationsDir = "../../../../migrations"

// newTestDB opens a temp-dir database migrated up to version (0 for all)
func newTestDB(t *testing.T, version int) *sql.DB {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{Path: filepath.Join(t.TempDir(), "fiscal.db")}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).RunMigrationsTo(context.Background(), migrationsDir, version))
	return db.DB
}
