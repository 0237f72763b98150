package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type itemRow struct {
	ID   int64  `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

func openItems(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "items.db"), false, 0, gormlogger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Disconnect(db) })
	require.NoError(t, db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE)").Error)
	return db
}

func countItems(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table("items").Count(&n).Error)
	return n
}

func TestExecuteAndQuery(t *testing.T) {
	ctx := context.Background()
	db := openItems(t)

	first, err := Execute(ctx, db, "INSERT INTO items (name) VALUES (?)", "fool")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.AffectedRows)
	assert.Equal(t, int64(1), first.InsertID)

	second, err := Execute(ctx, db, "INSERT INTO items (name) VALUES (?)", "magician")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.InsertID)

	rows, err := Query[itemRow](ctx, db, "SELECT id, name FROM items ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, []itemRow{{1, "fool"}, {2, "magician"}}, rows)

	row, err := QueryFirst[itemRow](ctx, db, "SELECT id, name FROM items WHERE name = ?", "magician")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, int64(2), row.ID)

	missing, err := QueryFirst[itemRow](ctx, db, "SELECT id, name FROM items WHERE name = ?", "tower")
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := Query[itemRow](ctx, db, "SELECT id, name FROM items WHERE id > 10")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	updated, err := Execute(ctx, db, "UPDATE items SET name = name || '!'")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.AffectedRows)
}

func TestQueryAndExecuteErrors(t *testing.T) {
	ctx := context.Background()
	db := openItems(t)

	_, err := Query[itemRow](ctx, db, "SELECT id, name FROM nowhere")
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Contains(t, queryErr.SQL, "nowhere")

	_, err = Execute(ctx, db, "INSERT INTO items (name) VALUES (NULL)")
	var execErr *ExecuteError
	require.ErrorAs(t, err, &execErr)
}

func TestExecuteBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := openItems(t)

	results, err := ExecuteBatch(ctx, db, []Statement{
		{SQL: "INSERT INTO items (name) VALUES (?)", Args: []interface{}{"cups"}},
		{SQL: "INSERT INTO items (name) VALUES (?)", Args: []interface{}{"wands"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[1].InsertID)

	_, err = ExecuteBatch(ctx, db, []Statement{
		{SQL: "INSERT INTO items (name) VALUES (?)", Args: []interface{}{"swords"}},
		{SQL: "INSERT INTO items (name) VALUES (?)", Args: []interface{}{"cups"}},
	})
	var execErr *ExecuteError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.Index)
	assert.Equal(t, int64(2), countItems(t, db))
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()
	db := openItems(t)

	boom := errors.New("boom")
	err := Transaction(ctx, db, func(tx *gorm.DB) error {
		if _, err := Execute(ctx, tx, "INSERT INTO items (name) VALUES (?)", "star"); err != nil {
			return err
		}
		return boom
	})
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countItems(t, db))

	require.NoError(t, Transaction(ctx, db, func(tx *gorm.DB) error {
		_, err := Execute(ctx, tx, "INSERT INTO items (name) VALUES (?)", "moon")
		return err
	}))
	assert.Equal(t, int64(1), countItems(t, db))
}
