// Package interpretation 牌义
package interpretation

import (
	"tarotstore/app/models"
)

// Interpretation 单张牌在某个方向上的牌义，每张牌正逆位各一条
type Interpretation struct {
	models.BaseModel

	CardID    uint64    `gorm:"column:card_id" json:"card_id"`
	Direction Direction `gorm:"column:direction" json:"direction"`
	Summary   string    `gorm:"column:summary" json:"summary"`
	Detail    *string   `gorm:"column:detail" json:"detail,omitempty"`
}

// TableName 表名
func (Interpretation) TableName() string {
	return "card_interpretation"
}

// InterpretationDimension 牌义与维度的桥接表，给出特定方向、特定维度下的解读文本
type InterpretationDimension struct {
	models.BaseModel

	InterpretationID uint64  `gorm:"column:interpretation_id" json:"interpretation_id"`
	DimensionID      uint64  `gorm:"column:dimension_id" json:"dimension_id"`
	Aspect           *string `gorm:"column:aspect" json:"aspect,omitempty"`
	AspectType       *int    `gorm:"column:aspect_type" json:"aspect_type,omitempty"`
	Content          string  `gorm:"column:content" json:"content"`
}

// TableName 表名
func (InterpretationDimension) TableName() string {
	return "card_interpretation_dimension"
}
