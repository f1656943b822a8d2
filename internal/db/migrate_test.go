package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUpDown(t *testing.T) {
	database, err := NewDB(filepath.Join(t.TempDir(), "migrate_test.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.MigrateUp("migrations"))

	version, dirty, err := database.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)

	// Second up is a no-op.
	require.NoError(t, database.MigrateUp("migrations"))

	require.NoError(t, database.MigrateDown("migrations"))
	version, _, err = database.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestGetLatestMigrationVersion(t *testing.T) {
	version, err := GetLatestMigrationVersion("migrations")
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	_, err = GetLatestMigrationVersion(t.TempDir())
	assert.Error(t, err)
}

func TestCheckAndPromptMigrations(t *testing.T) {
	database, err := NewDB(filepath.Join(t.TempDir(), "check_test.db"))
	require.NoError(t, err)
	defer database.Close()

	// Fresh database: migrations outstanding.
	needed, err := database.CheckAndPromptMigrations("migrations")
	assert.True(t, needed)
	assert.Error(t, err)

	require.NoError(t, database.MigrateUp("migrations"))

	needed, err = database.CheckAndPromptMigrations("migrations")
	require.NoError(t, err)
	assert.False(t, needed)
}
