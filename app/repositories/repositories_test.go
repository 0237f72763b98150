package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tarotstore/app/models/card"
	"tarotstore/app/models/history"
	"tarotstore/app/models/interpretation"
	"tarotstore/pkg/database"
	"tarotstore/pkg/database/schema"
	"tarotstore/pkg/dataset/datasettest"
	"tarotstore/pkg/seeder"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	gormlogger "gorm.io/gorm/logger"
)

// setupStore 构建已导入完整数据集的参考库资源，并以它初始化 Manager
func setupStore(t *testing.T) *database.Manager {
	t.Helper()
	ctx := context.Background()

	asset := filepath.Join(t.TempDir(), "reference.db")
	db, err := database.Connect(asset, false, 0, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, schema.ApplyReference(ctx, db))
	session := seeder.NewEngine(db, datasettest.StaticLoader{Bundle: datasettest.Bundle()}).ImportAll(ctx)
	require.True(t, session.IsCompleted, session.Failed())
	require.NoError(t, database.Disconnect(db))

	m := database.NewManager(database.Options{
		Dir:           t.TempDir(),
		ReferenceFile: "reference.db",
		WritableFile:  "writable.db",
		AssetFs:       afero.NewOsFs(),
		AssetPath:     asset,
		GormLogger:    gormlogger.Discard,
	})
	_, err = m.Initialize(ctx)
	require.NoError(t, err)
	require.NoError(t, m.SealReference(ctx))
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestCardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepository(setupStore(t))

	cards, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 78)
	assert.Equal(t, datasettest.MajorName(0), cards[0].Name)
	assert.True(t, cards[0].IsMajor())
	assert.Nil(t, cards[0].Suit)

	majors, err := repo.ListByArcana(ctx, card.ArcanaMajor)
	require.NoError(t, err)
	assert.Len(t, majors, 22)
	minors, err := repo.ListByArcana(ctx, card.ArcanaMinor)
	require.NoError(t, err)
	assert.Len(t, minors, 56)

	cups, err := repo.GetByName(ctx, datasettest.MinorName("Cups", 3))
	require.NoError(t, err)
	require.NotNil(t, cups)
	assert.Equal(t, "Cups", cups.SuitName())
	assert.Equal(t, 3, cups.Number)

	byID, err := repo.GetByID(ctx, cups.ID)
	require.NoError(t, err)
	assert.Equal(t, cups, byID)

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	unknown, err := repo.MissingIDs(ctx, []uint64{999, cups.ID, 1000})
	require.NoError(t, err)
	assert.Equal(t, []uint64{999, 1000}, unknown)
	unknown, err = repo.MissingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	interpretations, err := repo.Interpretations(ctx, cups.ID)
	require.NoError(t, err)
	require.Len(t, interpretations, 2)
	assert.Equal(t, interpretation.DirectionUpright, interpretations[0].Direction)
	assert.Equal(t, interpretation.DirectionReversed, interpretations[1].Direction)

	reversed, err := repo.Interpretation(ctx, cups.ID, interpretation.DirectionReversed)
	require.NoError(t, err)
	require.NotNil(t, reversed)
	assert.Equal(t, cups.Name+" reversed", reversed.Summary)

	dims, err := repo.InterpretationDimensions(ctx, reversed.ID)
	require.NoError(t, err)
	require.Len(t, dims, 1)
	assert.Contains(t, dims[0].Content, reversed.Summary)
}

func TestDimensionAndSpreadRepository(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	dimensions := NewDimensionRepository(store)
	categories, err := dimensions.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"timeline"}, categories)

	timeline, err := dimensions.ListByCategory(ctx, "timeline")
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	for i, d := range timeline {
		assert.Equal(t, datasettest.Dimensions[i], d.Name)
		require.NotNil(t, d.AspectType)
		assert.Equal(t, i+1, *d.AspectType)
	}

	spreads := NewSpreadRepository(store)
	all, err := spreads.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].CardCount)

	one, err := spreads.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Three Card", one.Name)
}

func newRecord(userID string, ts int64) *history.Record {
	return &history.Record{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Timestamp:          ts,
		SpreadID:           1,
		CardIDs:            history.CardIDs{3, 14, 70},
		InterpretationMode: history.ModeBasic,
		Result:             datatypes.JSON(`{"summary":"ok"}`),
	}
}

func TestHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(setupStore(t))
	now := time.Now().UnixMilli()

	first := newRecord("alice", now-2000)
	second := newRecord("alice", now-1000)
	other := newRecord("bob", now)
	for _, r := range []*history.Record{first, second, other} {
		require.NoError(t, repo.Create(ctx, r))
	}

	got, err := repo.GetByID(ctx, "alice", first.ID)
	require.NoError(t, err)
	assert.Equal(t, history.CardIDs{3, 14, 70}, got.CardIDs)
	assert.JSONEq(t, `{"summary":"ok"}`, string(got.Result))
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.GetByID(ctx, "bob", first.ID)
	assert.ErrorIs(t, err, ErrHistoryNotFound)

	records, total, err := repo.GetByUserID(ctx, "alice", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 1)
	assert.Equal(t, second.ID, records[0].ID)

	got.InterpretationMode = history.ModeAI
	got.Result = datatypes.JSON(`{"summary":"updated"}`)
	require.NoError(t, repo.Update(ctx, got))
	updated, err := repo.GetByID(ctx, "alice", first.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsAI())
	assert.JSONEq(t, `{"summary":"updated"}`, string(updated.Result))

	dup := newRecord("bob", now)
	dup.ID = first.ID
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrHistoryExists)

	require.NoError(t, repo.Delete(ctx, "alice", first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "alice", first.ID), ErrHistoryNotFound)

	deleted, err := repo.DeleteByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err = repo.GetByUserID(ctx, "bob", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestHistoryValidationAndLegacyMode(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	repo := NewHistoryRepository(store)

	bad := newRecord("", time.Now().UnixMilli())
	assert.Error(t, repo.Create(ctx, bad))

	_, err := store.ExecuteWritable(ctx,
		`INSERT INTO user_history (id, user_id, timestamp, spread_id, card_ids, interpretation_mode, created_at, updated_at)
		 VALUES ('legacy', 'carol', 1, 1, '[5]', 'default', datetime('now'), datetime('now'))`)
	require.NoError(t, err)

	legacy, err := repo.GetByID(ctx, "carol", "legacy")
	require.NoError(t, err)
	assert.Equal(t, history.ModeBasic, legacy.InterpretationMode)
	assert.Equal(t, history.CardIDs{5}, legacy.CardIDs)
}
