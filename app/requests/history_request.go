package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
	"gorm.io/datatypes"
)

// HistoryRequest 创建或更新占卜历史
type HistoryRequest struct {
	ID                 string         `json:"id,omitempty" valid:"id"`
	Timestamp          int64          `json:"timestamp,omitempty" valid:"timestamp"`
	SpreadID           uint64         `json:"spread_id" valid:"spread_id"`
	CardIDs            []uint64       `json:"card_ids" valid:"card_ids"`
	InterpretationMode string         `json:"interpretation_mode" valid:"interpretation_mode"`
	Result             datatypes.JSON `json:"result,omitempty"`
}

// ValidateHistory 解析并验证历史记录请求
func ValidateHistory(c *gin.Context) (*HistoryRequest, error) {
	// 1. 首先绑定 JSON
	req, err := Bind[HistoryRequest](c)
	if err != nil {
		return nil, err
	}

	// 2. 验证规则
	rules := govalidator.MapData{
		"id":                  []string{"max:64"},
		"spread_id":           []string{"required", "min:1"},
		"card_ids":            []string{"required"},
		"interpretation_mode": []string{"required", "in:basic,default,ai"},
	}

	// 3. 验证消息
	messages := govalidator.MapData{
		"id": []string{
			"max:记录 ID 长度不能超过 64 个字符",
		},
		"spread_id": []string{
			"required:牌阵 ID 不能为空",
			"min:牌阵 ID 必须大于 0",
		},
		"card_ids": []string{
			"required:卡牌不能为空",
		},
		"interpretation_mode": []string{
			"required:解读方式不能为空",
			"in:解读方式必须是 basic 或 ai",
		},
	}

	// 4. 开始验证
	if err := ValidateStruct(req, rules, messages); err != nil {
		return nil, err
	}

	return req, nil
}
