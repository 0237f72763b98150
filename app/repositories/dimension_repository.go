package repositories

import (
	"context"

	"tarotstore/app/models/dimension"
	"tarotstore/pkg/database"
)

// DimensionRepository 解读维度
type DimensionRepository struct {
	store *database.Manager
}

// NewDimensionRepository 创建仓库实例
func NewDimensionRepository(store *database.Manager) *DimensionRepository {
	return &DimensionRepository{store: store}
}

// ListByCategory 一个主题下的维度，按 aspect_type 排序
func (r *DimensionRepository) ListByCategory(ctx context.Context, category string) ([]dimension.Dimension, error) {
	return database.QueryReference[dimension.Dimension](ctx, r.store,
		`SELECT id, name, category, description, aspect, aspect_type
		 FROM dimension WHERE category = ? ORDER BY aspect_type, id`, category)
}

// Categories 全部主题
func (r *DimensionRepository) Categories(ctx context.Context) ([]string, error) {
	type row struct {
		Category string `gorm:"column:category"`
	}
	rows, err := database.QueryReference[row](ctx, r.store,
		"SELECT DISTINCT category FROM dimension ORDER BY category")
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Category)
	}
	return categories, nil
}
