package card

// Arcana 大小阿卡纳
type Arcana string

const (
	ArcanaMajor Arcana = "Major" // 大阿卡纳，22 张
	ArcanaMinor Arcana = "Minor" // 小阿卡纳，56 张
)

// 整副牌的固定张数
const (
	DeckSize     = 78
	MajorCount   = 22
	MinorCount   = 56
	SuitCount    = 4
	CardsPerSuit = 14
)

// KnownSuits 默认的四个花色
var KnownSuits = []string{"Wands", "Cups", "Swords", "Pentacles"}

// Valid 是否为合法的阿卡纳取值
func (a Arcana) Valid() bool {
	return a == ArcanaMajor || a == ArcanaMinor
}

// IsMajor 是否大阿卡纳
func (c *Card) IsMajor() bool {
	return c.Arcana == ArcanaMajor
}

// SuitName 花色名，大阿卡纳返回空字符串
func (c *Card) SuitName() string {
	if c.Suit == nil {
		return ""
	}
	return *c.Suit
}
