package dataset

import (
	"tarotstore/app/models/interpretation"
)

// CardStyleRow 牌面风格
type CardStyleRow struct {
	Name         string `json:"name"`
	ImageBaseURL string `json:"image_base_url"`
}

// DimensionRow 解读维度
type DimensionRow struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Aspect      *string `json:"aspect,omitempty"`
	AspectType  *int    `json:"aspect_type,omitempty"`
}

// SpreadRow 牌阵
type SpreadRow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CardCount   *int   `json:"card_count"`
}

// CardRow 塔罗牌，风格以 style_name 引用
type CardRow struct {
	Name      string  `json:"name"`
	Arcana    string  `json:"arcana"`
	Suit      *string `json:"suit"`
	Number    *int    `json:"number"`
	ImageURL  string  `json:"image_url"`
	StyleName string  `json:"style_name"`
	Deck      string  `json:"deck"`
}

// InterpretationRow 牌义，牌以 card_name 引用
type InterpretationRow struct {
	CardName  string  `json:"card_name"`
	Direction string  `json:"direction"`
	Summary   string  `json:"summary"`
	Detail    *string `json:"detail,omitempty"`
}

// Key 牌义自然键
func (r InterpretationRow) Key() string {
	return interpretation.Key(r.CardName, interpretation.Direction(r.Direction))
}

// InterpretationDimensionRow 牌义维度，以 card_name + direction 与 dimension_name 引用
type InterpretationDimensionRow struct {
	CardName      string  `json:"card_name"`
	Direction     string  `json:"direction"`
	DimensionName string  `json:"dimension_name"`
	Aspect        *string `json:"aspect,omitempty"`
	AspectType    *int    `json:"aspect_type,omitempty"`
	Content       string  `json:"content"`
}

// InterpretationKey 引用的牌义自然键
func (r InterpretationDimensionRow) InterpretationKey() string {
	return interpretation.Key(r.CardName, interpretation.Direction(r.Direction))
}
