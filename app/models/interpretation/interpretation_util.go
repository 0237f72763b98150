package interpretation

import "fmt"

// Direction 牌的朝向
type Direction string

const (
	DirectionUpright  Direction = "upright"  // 正位
	DirectionReversed Direction = "reversed" // 逆位
)

// Valid 是否为合法方向
func (d Direction) Valid() bool {
	return d == DirectionUpright || d == DirectionReversed
}

// Key 牌义的自然键 "{card_name}-{direction}"
func Key(cardName string, direction Direction) string {
	return fmt.Sprintf("%s-%s", cardName, direction)
}
