// Package dataset 数据集加载与校验
//
// 每个参考表族对应一个带版本信封的 JSON 文件：
//
//	{ "version": "...", "updated_at": "...", "description": "...", "data": [ ... ] }
//
// 加载时先做信封结构校验，再逐行校验必填与枚举字段，
// 最后对牌与牌义两个定数表族做数量校验。任何一步失败都不会写库。
package dataset

// 表族名，与参考库表名一致
const (
	FamilyCardStyle                   = "card_style"
	FamilyDimension                   = "dimension"
	FamilySpread                      = "spread"
	FamilyCard                        = "card"
	FamilyCardInterpretation          = "card_interpretation"
	FamilyCardInterpretationDimension = "card_interpretation_dimension"
)

// Families 全部表族
var Families = []string{
	FamilyCardStyle,
	FamilyDimension,
	FamilySpread,
	FamilyCard,
	FamilyCardInterpretation,
	FamilyCardInterpretationDimension,
}

// envelopeKeys 信封必须包含的字段
var envelopeKeys = []string{"version", "updated_at", "description", "data"}

// Dataset 带版本信封的数据集
type Dataset[T any] struct {
	Version     string `json:"version"`
	UpdatedAt   string `json:"updated_at"`
	Description string `json:"description"`
	Data        []T    `json:"data"`
}

// Len 行数
func (d *Dataset[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Data)
}

// Bundle 六个表族的完整数据
type Bundle struct {
	CardStyles               *Dataset[CardStyleRow]
	Dimensions               *Dataset[DimensionRow]
	Spreads                  *Dataset[SpreadRow]
	Cards                    *Dataset[CardRow]
	Interpretations          *Dataset[InterpretationRow]
	InterpretationDimensions *Dataset[InterpretationDimensionRow]
}

// Counts 各表族行数
func (b *Bundle) Counts() map[string]int {
	return map[string]int{
		FamilyCardStyle:                   b.CardStyles.Len(),
		FamilyDimension:                   b.Dimensions.Len(),
		FamilySpread:                      b.Spreads.Len(),
		FamilyCard:                        b.Cards.Len(),
		FamilyCardInterpretation:          b.Interpretations.Len(),
		FamilyCardInterpretationDimension: b.InterpretationDimensions.Len(),
	}
}
