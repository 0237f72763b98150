// Package history 用户占卜历史
package history

import (
	"tarotstore/app/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Record 一次占卜的历史记录，只存在于可写库。
// 主键由调用方生成，spread_id 与 card_ids 仅保存数值，不对参考库做外键约束
type Record struct {
	ID                 string         `gorm:"column:id;primaryKey" json:"id"`
	UserID             string         `gorm:"column:user_id" json:"user_id"`
	Timestamp          int64          `gorm:"column:timestamp" json:"timestamp"` // 毫秒
	SpreadID           uint64         `gorm:"column:spread_id" json:"spread_id"`
	CardIDs            CardIDs        `gorm:"column:card_ids" json:"card_ids"`
	InterpretationMode Mode           `gorm:"column:interpretation_mode" json:"interpretation_mode"`
	Result             datatypes.JSON `gorm:"column:result" json:"result,omitempty"`

	models.CommonTimestampsField
}

// TableName 表名
func (Record) TableName() string {
	return "user_history"
}

// BeforeSave GORM 钩子
func (r *Record) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// AfterFind 旧数据中的 default 统一读成 basic
func (r *Record) AfterFind(tx *gorm.DB) error {
	r.InterpretationMode = r.InterpretationMode.Normalize()
	return nil
}
