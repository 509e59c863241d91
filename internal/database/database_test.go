package database_test

import (
	"context"
	"testing"

	"dailydiet/internal/config"
	"dailydiet/internal/database"
	"dailydiet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{DatabaseDriver: config.DriverSQLite, DatabaseDSN: "file::memory:"}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	assert.NoError(t, database.Ping(context.Background(), db))

	for _, table := range []string{"users", "meals"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	for _, column := range []string{"userId", "mealId", "description", "dateAndHour", "inOrOutDiet"} {
		assert.True(t, db.Migrator().HasColumn(&models.Meal{}, column), "missing column %s", column)
	}
}

func TestOpen_MemoryDriverHasNoSQLStore(t *testing.T) {
	_, err := database.Open(&config.Config{DatabaseDriver: config.DriverMemory})
	assert.Error(t, err)
}
