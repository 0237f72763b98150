package repositories

import (
	"context"

	"tarotstore/app/models/spread"
	"tarotstore/pkg/database"
)

// SpreadRepository 牌阵
type SpreadRepository struct {
	store *database.Manager
}

// NewSpreadRepository 创建仓库实例
func NewSpreadRepository(store *database.Manager) *SpreadRepository {
	return &SpreadRepository{store: store}
}

// List 全部牌阵
func (r *SpreadRepository) List(ctx context.Context) ([]spread.Spread, error) {
	return database.QueryReference[spread.Spread](ctx, r.store,
		"SELECT id, name, description, card_count FROM spread ORDER BY id")
}

// GetByID 按 id 取牌阵
func (r *SpreadRepository) GetByID(ctx context.Context, id uint64) (*spread.Spread, error) {
	return database.QueryFirstReference[spread.Spread](ctx, r.store,
		"SELECT id, name, description, card_count FROM spread WHERE id = ?", id)
}
