package history

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Mode 解读方式
type Mode string

const (
	ModeBasic   Mode = "basic"   // 基础牌义
	ModeAI      Mode = "ai"      // AI 解读
	ModeDefault Mode = "default" // 旧值，等同 basic
)

// Normalize default 视为 basic
func (m Mode) Normalize() Mode {
	if m == ModeDefault {
		return ModeBasic
	}
	return m
}

// Valid 是否为可写入的解读方式
func (m Mode) Valid() bool {
	switch m {
	case ModeBasic, ModeAI, ModeDefault:
		return true
	}
	return false
}

// CardIDs 有序的牌 ID 列表，以 JSON 文本存储
type CardIDs []uint64

// Value 实现 driver.Valuer 接口
func (c CardIDs) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (c *CardIDs) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = CardIDs{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("invalid type for card_ids: %T", value)
	}
	if len(raw) == 0 {
		*c = CardIDs{}
		return nil
	}
	return json.Unmarshal(raw, c)
}

// Validate 验证记录
func (r *Record) Validate() error {
	if r.ID == "" {
		return errors.New("id is required")
	}
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	if !r.InterpretationMode.Valid() {
		return fmt.Errorf("invalid interpretation mode %q", r.InterpretationMode)
	}
	if r.Timestamp <= 0 {
		return errors.New("timestamp is required")
	}
	return nil
}

// IsAI 是否 AI 解读
func (r *Record) IsAI() bool {
	return r.InterpretationMode == ModeAI
}
