// Package spread 牌阵
package spread

import (
	"tarotstore/app/models"
)

// Spread 牌阵，card_count 为一次抽牌消耗的张数
type Spread struct {
	models.BaseModel

	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	CardCount   int    `gorm:"column:card_count" json:"card_count"`
}

// TableName 表名
func (Spread) TableName() string {
	return "spread"
}
