package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tarotstore/pkg/database/schema"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

const assetPath = "assets/reference.db"

// buildAsset 在临时目录生成一个参考库文件，写入给定的牌面风格，返回文件内容
func buildAsset(t *testing.T, styles ...string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset.db")
	db, err := Connect(path, false, 0, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, schema.ApplyReference(context.Background(), db))
	for _, name := range styles {
		require.NoError(t, db.Exec("INSERT INTO card_style (name, image_base_url) VALUES (?, ?)", name, "https://img/"+name).Error)
	}
	require.NoError(t, Disconnect(db))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}

func newTestManager(t *testing.T, dir string, asset []byte) *Manager {
	t.Helper()
	fs := afero.NewMemMapFs()
	if asset != nil {
		require.NoError(t, afero.WriteFile(fs, assetPath, asset, 0o644))
	}
	return NewManager(Options{
		Dir:           dir,
		ReferenceFile: "reference.db",
		WritableFile:  "writable.db",
		AssetFs:       fs,
		AssetPath:     assetPath,
		GormLogger:    gormlogger.Discard,
	})
}

type styleRow struct {
	ID   int64  `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

type historyRow struct {
	ID     string `gorm:"column:id"`
	UserID string `gorm:"column:user_id"`
}

func insertHistory(t *testing.T, m *Manager, id string) {
	t.Helper()
	_, err := m.ExecuteWritable(context.Background(),
		`INSERT INTO user_history (id, user_id, timestamp, spread_id, card_ids, interpretation_mode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, datetime('now'), datetime('now'))`,
		id, "user-1", 1700000000000, 1, "[1,2,3]", "basic")
	require.NoError(t, err)
}

func TestHandlesBeforeInitialize(t *testing.T) {
	m := newTestManager(t, t.TempDir(), nil)

	_, err := m.ReferenceHandle()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = m.WritableHandle()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = QueryReference[styleRow](context.Background(), m, "SELECT id, name FROM card_style")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = m.ExecuteWritable(context.Background(), "DELETE FROM user_history")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, m.SealReference(context.Background()), ErrNotInitialized)
	assert.False(t, m.Status().IsInitialized)
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "databases")
	m := newTestManager(t, dir, buildAsset(t, "classic"))
	defer m.Close()

	status, err := m.Initialize(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsInitialized)
	assert.Equal(t, schema.WritableVersion, status.Version)
	assert.NotEmpty(t, status.LastSync)

	assert.FileExists(t, m.ReferencePath())
	assert.FileExists(t, m.WritablePath())
	assert.NoFileExists(t, m.ReferencePath()+".tmp")

	again, err := m.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, status, again)

	rows, err := QueryReference[styleRow](ctx, m, "SELECT id, name FROM card_style")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "classic", rows[0].Name)
}

func TestReferenceRefreshReplacesContent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := newTestManager(t, dir, buildAsset(t, "old-a", "old-b"))
	_, err := first.Initialize(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestManager(t, dir, buildAsset(t, "new"))
	defer second.Close()
	_, err = second.Initialize(ctx)
	require.NoError(t, err)

	rows, err := QueryReference[styleRow](ctx, second, "SELECT id, name FROM card_style ORDER BY id")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].Name)
}

func TestWritableSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	asset := buildAsset(t, "classic")

	first := newTestManager(t, dir, asset)
	_, err := first.Initialize(ctx)
	require.NoError(t, err)
	insertHistory(t, first, "h-1")
	require.NoError(t, first.Close())

	second := newTestManager(t, dir, asset)
	defer second.Close()
	_, err = second.Initialize(ctx)
	require.NoError(t, err)

	row, err := QueryFirstWritable[historyRow](ctx, second, "SELECT id, user_id FROM user_history WHERE id = ?", "h-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "user-1", row.UserID)

	deleted, err := second.ResetWritableData(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	row, err = QueryFirstWritable[historyRow](ctx, second, "SELECT id, user_id FROM user_history WHERE id = ?", "h-1")
	require.NoError(t, err)
	assert.Nil(t, row)

	// 参考库不受影响
	styles, err := QueryReference[styleRow](ctx, second, "SELECT id, name FROM card_style")
	require.NoError(t, err)
	assert.Len(t, styles, 1)
}

func TestMissingAsset(t *testing.T) {
	m := newTestManager(t, t.TempDir(), nil)

	_, err := m.Initialize(context.Background())
	var assetErr *AssetMaterializationError
	require.ErrorAs(t, err, &assetErr)
	assert.Equal(t, assetPath, assetErr.Asset)
	assert.False(t, m.Status().IsInitialized)
}

func TestIntegrityVerification(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(t.TempDir(), "partial.db")
	db, err := Connect(path, false, 0, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, schema.Apply(ctx, db, schema.Reference[:2]))
	require.NoError(t, Disconnect(db))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	m := newTestManager(t, dir, raw)
	_, err = m.Initialize(ctx)

	var integrityErr *IntegrityVerificationError
	require.ErrorAs(t, err, &integrityErr)
	assert.ElementsMatch(t, []string{schema.TableCard, schema.TableCardInterpretation, schema.TableSpread}, integrityErr.Missing)
	assert.NoFileExists(t, m.ReferencePath())
	assert.NoFileExists(t, m.ReferencePath()+".tmp")
}

func TestIntegrityVerificationKeepsQueryError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.db.tmp")
	require.NoError(t, os.WriteFile(path, buildAsset(t, "classic"), 0o644))

	m := newTestManager(t, t.TempDir(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.verifyReference(ctx, path)
	var integrityErr *IntegrityVerificationError
	require.ErrorAs(t, err, &integrityErr)
	assert.Empty(t, integrityErr.Missing)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSealReference(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, t.TempDir(), buildAsset(t, "classic"))
	defer m.Close()
	_, err := m.Initialize(ctx)
	require.NoError(t, err)

	require.NoError(t, m.SealReference(ctx))
	require.NoError(t, m.SealReference(ctx))
	assert.True(t, m.Status().Sealed)

	ref, err := m.ReferenceHandle()
	require.NoError(t, err)
	_, err = Execute(ctx, ref, "INSERT INTO card_style (name, image_base_url) VALUES (?, ?)", "x", "y")
	var execErr *ExecuteError
	assert.ErrorAs(t, err, &execErr)

	rows, err := QueryReference[styleRow](ctx, m, "SELECT id, name FROM card_style")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSealReferenceFailureClosesBothHandles(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, t.TempDir(), buildAsset(t, "classic"))
	_, err := m.Initialize(ctx)
	require.NoError(t, err)
	writable, err := m.WritableHandle()
	require.NoError(t, err)

	// 只读模式不会创建文件，重新打开必然失败
	require.NoError(t, removeStoreFiles(afero.NewOsFs(), m.ReferencePath()))
	require.Error(t, m.SealReference(ctx))

	assert.False(t, m.Status().IsInitialized)
	_, err = m.WritableHandle()
	assert.ErrorIs(t, err, ErrNotInitialized)
	sqlDB, err := writable.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())

	// 可以重新初始化
	_, err = m.Initialize(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

func TestFullReset(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, t.TempDir(), buildAsset(t, "classic"))
	_, err := m.Initialize(ctx)
	require.NoError(t, err)
	insertHistory(t, m, "h-1")

	require.NoError(t, m.FullReset())
	assert.NoFileExists(t, m.ReferencePath())
	assert.NoFileExists(t, m.WritablePath())
	_, err = m.WritableHandle()
	assert.ErrorIs(t, err, ErrNotInitialized)

	// 重置后可以重新初始化，历史记录已不存在
	_, err = m.Initialize(ctx)
	require.NoError(t, err)
	defer m.Close()
	rows, err := QueryWritable[historyRow](ctx, m, "SELECT id, user_id FROM user_history")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
