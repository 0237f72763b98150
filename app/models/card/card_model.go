// Package card 塔罗牌
package card

import (
	"tarotstore/app/models"
)

// Card 塔罗牌。大阿卡纳 suit 为空，小阿卡纳属于四个花色之一
type Card struct {
	models.BaseModel

	Name     string  `gorm:"column:name" json:"name"`
	Arcana   Arcana  `gorm:"column:arcana" json:"arcana"`
	Suit     *string `gorm:"column:suit" json:"suit"`
	Number   int     `gorm:"column:number" json:"number"`
	ImageURL string  `gorm:"column:image_url" json:"image_url"`
	StyleID  uint64  `gorm:"column:style_id" json:"style_id"`
	Deck     string  `gorm:"column:deck" json:"deck"`
}

// TableName 表名
func (Card) TableName() string {
	return "card"
}
