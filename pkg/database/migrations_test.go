package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0644))
}

func TestMigrator_RunMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_second.sql", `ALTER TABLE widgets ADD COLUMN color TEXT;`)
	writeMigration(t, dir, "001_first.sql", `CREATE TABLE widgets (id TEXT PRIMARY KEY);`)
	writeMigration(t, dir, "README.md", `not a migration`)

	logger := zap.NewNop()
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "test.db")}, logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	migrator := NewMigrator(db, logger)

	t.Run("stops at target version", func(t *testing.T) {
		require.NoError(t, migrator.RunMigrationsTo(ctx, dir, 1))
		applied, err := migrator.AppliedVersions(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[int]bool{1: true}, applied)
	})

	t.Run("applies the rest and is idempotent", func(t *testing.T) {
		require.NoError(t, migrator.RunMigrations(ctx, dir))
		require.NoError(t, migrator.RunMigrations(ctx, dir))

		applied, err := migrator.AppliedVersions(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[int]bool{1: true, 2: true}, applied)

		_, err = db.ExecContext(ctx, `INSERT INTO widgets (id, color) VALUES ('a', 'red')`)
		assert.NoError(t, err)
	})
}

func TestLoadMigrations(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "010_later.sql", `SELECT 1;`)
		writeMigration(t, dir, "002_early.sql", `SELECT 1;`)

		migrations, err := LoadMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 2)
		assert.Equal(t, 2, migrations[0].Version)
		assert.Equal(t, "early", migrations[0].Name)
		assert.Equal(t, 10, migrations[1].Version)
	})

	t.Run("rejects duplicate versions", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "001_a.sql", `SELECT 1;`)
		writeMigration(t, dir, "001_b.sql", `SELECT 1;`)

		_, err := LoadMigrations(dir)
		assert.ErrorContains(t, err, "duplicate migration version")
	})

	t.Run("rejects unnumbered files", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "schema.sql", `SELECT 1;`)

		_, err := LoadMigrations(dir)
		assert.ErrorContains(t, err, "invalid migration filename")
	})
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New(Config{}, zap.NewNop())
	assert.Error(t, err)
}
