// Package dimension 解读维度
package dimension

import (
	"tarotstore/app/models"
)

// Dimension 解读维度。category 把维度分组为一次解读的主题，
// aspect_type 决定维度在主题内的顺序（如 过去=1 现在=2 未来=3）
type Dimension struct {
	models.BaseModel

	Name        string  `gorm:"column:name" json:"name"`
	Category    string  `gorm:"column:category" json:"category"`
	Description string  `gorm:"column:description" json:"description"`
	Aspect      *string `gorm:"column:aspect" json:"aspect,omitempty"`
	AspectType  *int    `gorm:"column:aspect_type" json:"aspect_type,omitempty"`
}

// TableName 表名
func (Dimension) TableName() string {
	return "dimension"
}
