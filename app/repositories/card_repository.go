package repositories

import (
	"context"

	"tarotstore/app/models/card"
	"tarotstore/app/models/interpretation"
	"tarotstore/pkg/database"
)

// CardRepository 牌与牌义，只读参考库
type CardRepository struct {
	store *database.Manager
}

// NewCardRepository 创建仓库实例
func NewCardRepository(store *database.Manager) *CardRepository {
	return &CardRepository{store: store}
}

const cardColumns = "id, name, arcana, suit, number, image_url, style_id, deck"

// List 全部牌，按 id 排序
func (r *CardRepository) List(ctx context.Context) ([]card.Card, error) {
	return database.QueryReference[card.Card](ctx, r.store,
		"SELECT "+cardColumns+" FROM card ORDER BY id")
}

// GetByID 按 id 取牌，不存在返回 nil
func (r *CardRepository) GetByID(ctx context.Context, id uint64) (*card.Card, error) {
	return database.QueryFirstReference[card.Card](ctx, r.store,
		"SELECT "+cardColumns+" FROM card WHERE id = ?", id)
}

// GetByName 按名字取牌
func (r *CardRepository) GetByName(ctx context.Context, name string) (*card.Card, error) {
	return database.QueryFirstReference[card.Card](ctx, r.store,
		"SELECT "+cardColumns+" FROM card WHERE name = ?", name)
}

// MissingIDs 返回 ids 中参考库里不存在的牌，保持传入顺序
func (r *CardRepository) MissingIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := database.QueryReference[card.Card](ctx, r.store,
		"SELECT id FROM card WHERE id IN ?", ids)
	if err != nil {
		return nil, err
	}

	present := make(map[uint64]struct{}, len(rows))
	for _, row := range rows {
		present[row.ID] = struct{}{}
	}
	var missing []uint64
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ListByArcana 大阿卡纳或小阿卡纳，小阿卡纳按花色、序号排序
func (r *CardRepository) ListByArcana(ctx context.Context, arcana card.Arcana) ([]card.Card, error) {
	return database.QueryReference[card.Card](ctx, r.store,
		"SELECT "+cardColumns+" FROM card WHERE arcana = ? ORDER BY suit, number", string(arcana))
}

// Interpretations 一张牌的正逆位牌义
func (r *CardRepository) Interpretations(ctx context.Context, cardID uint64) ([]interpretation.Interpretation, error) {
	return database.QueryReference[interpretation.Interpretation](ctx, r.store,
		"SELECT id, card_id, direction, summary, detail FROM card_interpretation WHERE card_id = ? ORDER BY direction DESC", cardID)
}

// Interpretation 指定方向的牌义
func (r *CardRepository) Interpretation(ctx context.Context, cardID uint64, direction interpretation.Direction) (*interpretation.Interpretation, error) {
	return database.QueryFirstReference[interpretation.Interpretation](ctx, r.store,
		"SELECT id, card_id, direction, summary, detail FROM card_interpretation WHERE card_id = ? AND direction = ?",
		cardID, string(direction))
}

// InterpretationDimensions 牌义在各维度下的解读，按 aspect_type 排序
func (r *CardRepository) InterpretationDimensions(ctx context.Context, interpretationID uint64) ([]interpretation.InterpretationDimension, error) {
	return database.QueryReference[interpretation.InterpretationDimension](ctx, r.store,
		`SELECT id, interpretation_id, dimension_id, aspect, aspect_type, content
		 FROM card_interpretation_dimension WHERE interpretation_id = ? ORDER BY aspect_type, id`, interpretationID)
}
