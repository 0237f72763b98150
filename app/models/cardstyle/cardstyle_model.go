// Package cardstyle 牌面风格
package cardstyle

import (
	"tarotstore/app/models"
)

// CardStyle 牌面风格，Card 的父表，name 为自然键
type CardStyle struct {
	models.BaseModel

	Name         string `gorm:"column:name" json:"name"`
	ImageBaseURL string `gorm:"column:image_base_url" json:"image_base_url"`
}

// TableName 表名
func (CardStyle) TableName() string {
	return "card_style"
}
