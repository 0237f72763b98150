package seeder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tarotstore/pkg/database"
	"tarotstore/pkg/database/schema"
	"tarotstore/pkg/dataset"
	"tarotstore/pkg/dataset/datasettest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openReference(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "reference.db"), false, 0, gormlogger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Disconnect(db) })
	require.NoError(t, schema.ApplyReference(context.Background(), db))
	return db
}

func count(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

// scenarioBundle 1 个风格、78 张牌、1 个牌阵，其余表族为空
func scenarioBundle() *dataset.Bundle {
	b := datasettest.Bundle()
	b.Dimensions.Data = nil
	b.Interpretations.Data = nil
	b.InterpretationDimensions.Data = nil
	return b
}

func TestScenarioSeedEmptyStore(t *testing.T) {
	db := openReference(t)
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: scenarioBundle()})

	session := engine.ImportAll(context.Background())
	assert.NotEmpty(t, session.ID)
	assert.True(t, session.IsCompleted)
	assert.Equal(t, 100, session.TotalProgress)
	for _, st := range session.Statuses {
		assert.Equal(t, StatusCompleted, st.Status, st.Table)
		assert.Empty(t, st.Error)
	}
	assert.Equal(t, 78, session.Status(schema.TableCard).Result.Imported)
	assert.Equal(t, int64(78), count(t, db, schema.TableCard))
	assert.Equal(t, int64(1), count(t, db, schema.TableCardStyle))
	assert.Equal(t, int64(1), count(t, db, schema.TableSpread))
	assert.Same(t, session, engine.LastSession())
}

func TestScenarioRerunSkipsPopulatedTables(t *testing.T) {
	db := openReference(t)
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: scenarioBundle()})

	first := engine.ImportAll(context.Background())
	require.True(t, first.IsCompleted)

	second := engine.ImportAll(context.Background())
	assert.True(t, second.IsCompleted)
	assert.NotEqual(t, first.ID, second.ID)
	for _, st := range second.Statuses {
		require.Equal(t, StatusCompleted, st.Status, st.Table)
		prior := first.Status(st.Table).Result
		assert.Equal(t, 0, st.Result.Imported, st.Table)
		assert.Equal(t, int64(prior.Imported)+prior.Skipped, st.Result.Skipped, st.Table)
	}
	assert.Equal(t, int64(78), count(t, db, schema.TableCard))
}

func TestImportCompleteness(t *testing.T) {
	db := openReference(t)
	bundle := datasettest.Bundle()
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: bundle})

	session := engine.ImportAll(context.Background())
	require.True(t, session.IsCompleted, session.Failed())

	for table, n := range bundle.Counts() {
		assert.Equal(t, n, session.Status(table).Result.Imported, table)
		assert.Equal(t, int64(n), count(t, db, table), table)
	}

	again := engine.ImportAll(context.Background())
	for table, n := range bundle.Counts() {
		assert.Equal(t, int64(n), again.Status(table).Result.Skipped, table)
		assert.Equal(t, int64(n), count(t, db, table), table)
	}
}

func TestImportReferentialIntegrity(t *testing.T) {
	db := openReference(t)
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: datasettest.Bundle()})
	require.True(t, engine.ImportAll(context.Background()).IsCompleted)

	var orphans int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM card_interpretation_dimension cid
		LEFT JOIN card_interpretation ci ON ci.id = cid.interpretation_id
		LEFT JOIN dimension d ON d.id = cid.dimension_id
		WHERE ci.id IS NULL OR d.id IS NULL`).Scan(&orphans).Error)
	assert.Zero(t, orphans)

	// 桥接行解析到的牌义与数据集中的 card_name + direction 一致
	var key string
	require.NoError(t, db.Raw(`SELECT c.name || '-' || ci.direction FROM card_interpretation_dimension cid
		JOIN card_interpretation ci ON ci.id = cid.interpretation_id
		JOIN card c ON c.id = ci.card_id
		ORDER BY cid.id LIMIT 1`).Scan(&key).Error)
	assert.Equal(t, datasettest.MajorName(0)+"-upright", key)
}

func TestUnknownStyleAbortsCardImport(t *testing.T) {
	db := openReference(t)
	bundle := datasettest.Bundle()
	bundle.Cards.Data[40].StyleName = "unknown-style"
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: bundle})

	session := engine.ImportAll(context.Background())
	assert.False(t, session.IsCompleted)
	assert.Equal(t, 50, session.TotalProgress)

	for _, table := range []string{schema.TableCardStyle, schema.TableDimension, schema.TableSpread} {
		assert.Equal(t, StatusCompleted, session.Status(table).Status, table)
	}

	cardStatus := session.Status(schema.TableCard)
	assert.Equal(t, StatusError, cardStatus.Status)
	assert.Contains(t, cardStatus.Error, "unknown-style")
	assert.Zero(t, count(t, db, schema.TableCard))

	for _, table := range []string{schema.TableCardInterpretation, schema.TableCardInterpretationDimension} {
		st := session.Status(table)
		assert.Equal(t, StatusError, st.Status, table)
		assert.Contains(t, st.Error, "dependency")
	}
	assert.ElementsMatch(t, []string{
		schema.TableCard, schema.TableCardInterpretation, schema.TableCardInterpretationDimension,
	}, session.Failed())
}

func TestFailedRowRollsBackWholeTable(t *testing.T) {
	db := openReference(t)
	bundle := datasettest.Bundle()
	last := len(bundle.Interpretations.Data) - 1
	bundle.Interpretations.Data[last].Direction = "sideways"
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: bundle})

	session := engine.ImportAll(context.Background())
	assert.Equal(t, StatusError, session.Status(schema.TableCardInterpretation).Status)
	assert.Zero(t, count(t, db, schema.TableCardInterpretation))

	// 修正数据后重试，空表检查仍然成立
	bundle.Interpretations.Data[last].Direction = "reversed"
	retry := engine.ImportAll(context.Background())
	assert.True(t, retry.IsCompleted, retry.Failed())
	assert.Equal(t, int64(156), count(t, db, schema.TableCardInterpretation))
}

func TestDuplicateNaturalKey(t *testing.T) {
	db := openReference(t)
	bundle := datasettest.Bundle()
	bundle.CardStyles.Data = append(bundle.CardStyles.Data, bundle.CardStyles.Data[0])
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: bundle})

	session := engine.ImportAll(context.Background())
	st := session.Status(schema.TableCardStyle)
	assert.Equal(t, StatusError, st.Status)
	assert.Contains(t, st.Error, "duplicate")
	assert.Equal(t, StatusError, session.Status(schema.TableCard).Status)
	assert.Equal(t, StatusCompleted, session.Status(schema.TableDimension).Status)
}

func TestLoaderFailureMarksEveryTable(t *testing.T) {
	db := openReference(t)
	engine := NewEngine(db, datasettest.StaticLoader{Err: errors.New("dataset card: expected 78 cards, got 77")})

	session := engine.ImportAll(context.Background())
	assert.False(t, session.IsCompleted)
	assert.Zero(t, session.TotalProgress)
	require.Len(t, session.Statuses, 6)
	for _, st := range session.Statuses {
		assert.Equal(t, StatusError, st.Status)
		assert.Equal(t, "dataset card: expected 78 cards, got 77", st.Error)
	}
	assert.False(t, session.FinishedAt.IsZero())
}

func TestClearAllTables(t *testing.T) {
	ctx := context.Background()
	db := openReference(t)
	engine := NewEngine(db, datasettest.StaticLoader{Bundle: datasettest.Bundle()})
	require.True(t, engine.ImportAll(ctx).IsCompleted)

	require.NoError(t, engine.ClearAllTables(ctx))
	for _, table := range schema.ImportOrder() {
		assert.Zero(t, count(t, db, table), table)
	}

	session := engine.ImportAll(ctx)
	assert.True(t, session.IsCompleted)
	assert.Equal(t, 78, session.Status(schema.TableCard).Result.Imported)
}
