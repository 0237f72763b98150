package schema

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "schema.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func tableNames(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Raw(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`).Scan(&names).Error)
	return names
}

func TestApplyReferenceIsRepeatable(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, ApplyReference(ctx, db))
	require.NoError(t, ApplyReference(ctx, db))

	assert.ElementsMatch(t, ImportOrder(), tableNames(t, db))
}

func TestApplyWritableStampsVersion(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, ApplyWritable(ctx, db))
	require.NoError(t, ApplyWritable(ctx, db))

	assert.Equal(t, []string{TableUserHistory}, tableNames(t, db))

	var version int
	require.NoError(t, db.Raw("PRAGMA user_version").Scan(&version).Error)
	assert.Equal(t, WritableVersion, version)

	var indexes []string
	require.NoError(t, db.Raw(`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'user_history' AND name LIKE 'idx_%'`).Scan(&indexes).Error)
	assert.ElementsMatch(t, []string{
		"idx_user_history_user_id",
		"idx_user_history_timestamp",
		"idx_user_history_user_timestamp",
	}, indexes)
}

func TestUniqueNaturalKeys(t *testing.T) {
	db := openDB(t)
	require.NoError(t, ApplyReference(context.Background(), db))

	require.NoError(t, db.Exec(`INSERT INTO card_style (name, image_base_url) VALUES ('classic', 'https://cdn/classic')`).Error)
	err := db.Exec(`INSERT INTO card_style (name, image_base_url) VALUES ('classic', 'https://cdn/other')`).Error
	assert.Error(t, err)
}

func TestOrders(t *testing.T) {
	assert.Equal(t, []string{
		TableCardStyle, TableDimension, TableSpread,
		TableCard, TableCardInterpretation, TableCardInterpretationDimension,
	}, ImportOrder())
	assert.Equal(t, []string{
		TableCardInterpretationDimension, TableCardInterpretation, TableCard,
		TableSpread, TableDimension, TableCardStyle,
	}, ClearOrder())

	tbl, ok := Lookup(TableUserHistory)
	require.True(t, ok)
	assert.Contains(t, tbl.DDL, "id TEXT PRIMARY KEY")
	_, ok = Lookup("payments")
	assert.False(t, ok)
}
