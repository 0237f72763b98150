// Package datasettest 测试用的完整数据集构造器
package datasettest

import (
	"context"
	"fmt"
	"path/filepath"

	"tarotstore/app/models/card"
	"tarotstore/pkg/dataset"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// StyleName 夹具中唯一的牌面风格
const StyleName = "classic"

// Dimensions 夹具中的维度名，同属 timeline 主题
var Dimensions = []string{"past", "present", "future"}

func envelope[T any](description string, rows []T) *dataset.Dataset[T] {
	return &dataset.Dataset[T]{
		Version:     "1.0.0",
		UpdatedAt:   "2024-01-01T00:00:00Z",
		Description: description,
		Data:        rows,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// MajorName 第 i 张大阿卡纳的名字
func MajorName(i int) string {
	return fmt.Sprintf("Major %02d", i)
}

// MinorName 花色第 rank 张的名字
func MinorName(suit string, rank int) string {
	return fmt.Sprintf("%s %02d", suit, rank)
}

// Cards 22 张大阿卡纳 + 4×14 张小阿卡纳
func Cards() []dataset.CardRow {
	rows := make([]dataset.CardRow, 0, card.DeckSize)
	for i := 0; i < card.MajorCount; i++ {
		rows = append(rows, dataset.CardRow{
			Name:      MajorName(i),
			Arcana:    string(card.ArcanaMajor),
			Number:    intPtr(i),
			ImageURL:  fmt.Sprintf("major/%02d.png", i),
			StyleName: StyleName,
			Deck:      "rider-waite",
		})
	}
	for _, suit := range card.KnownSuits {
		for rank := 1; rank <= card.CardsPerSuit; rank++ {
			rows = append(rows, dataset.CardRow{
				Name:      MinorName(suit, rank),
				Arcana:    string(card.ArcanaMinor),
				Suit:      strPtr(suit),
				Number:    intPtr(rank),
				ImageURL:  fmt.Sprintf("%s/%02d.png", suit, rank),
				StyleName: StyleName,
				Deck:      "rider-waite",
			})
		}
	}
	return rows
}

// Interpretations 每张牌正逆位各一条
func Interpretations(cards []dataset.CardRow) []dataset.InterpretationRow {
	rows := make([]dataset.InterpretationRow, 0, 2*len(cards))
	for _, c := range cards {
		for _, direction := range []string{"upright", "reversed"} {
			rows = append(rows, dataset.InterpretationRow{
				CardName:  c.Name,
				Direction: direction,
				Summary:   c.Name + " " + direction,
			})
		}
	}
	return rows
}

// Bundle 可通过全部校验的完整数据集
func Bundle() *dataset.Bundle {
	cards := Cards()
	interpretations := Interpretations(cards)

	dimensions := make([]dataset.DimensionRow, 0, len(Dimensions))
	for i, name := range Dimensions {
		dimensions = append(dimensions, dataset.DimensionRow{
			Name:        name,
			Category:    "timeline",
			Description: "timeline " + name,
			Aspect:      strPtr(name),
			AspectType:  intPtr(i + 1),
		})
	}

	bridge := make([]dataset.InterpretationDimensionRow, 0, len(interpretations))
	for i, row := range interpretations {
		bridge = append(bridge, dataset.InterpretationDimensionRow{
			CardName:      row.CardName,
			Direction:     row.Direction,
			DimensionName: Dimensions[i%len(Dimensions)],
			AspectType:    intPtr(i%len(Dimensions) + 1),
			Content:       row.Summary + " in " + Dimensions[i%len(Dimensions)],
		})
	}

	return &dataset.Bundle{
		CardStyles: envelope("styles", []dataset.CardStyleRow{
			{Name: StyleName, ImageBaseURL: "https://cdn.example.com/classic/"},
		}),
		Dimensions: envelope("dimensions", dimensions),
		Spreads: envelope("spreads", []dataset.SpreadRow{
			{Name: "Three Card", Description: "past, present, future", CardCount: intPtr(3)},
		}),
		Cards:                    envelope("cards", cards),
		Interpretations:          envelope("interpretations", interpretations),
		InterpretationDimensions: envelope("interpretation dimensions", bridge),
	}
}

// Files 把数据集序列化为 <family>.json 文件内容
func Files(b *dataset.Bundle) (map[string][]byte, error) {
	values := map[string]interface{}{
		dataset.FamilyCardStyle:                   b.CardStyles,
		dataset.FamilyDimension:                   b.Dimensions,
		dataset.FamilySpread:                      b.Spreads,
		dataset.FamilyCard:                        b.Cards,
		dataset.FamilyCardInterpretation:          b.Interpretations,
		dataset.FamilyCardInterpretationDimension: b.InterpretationDimensions,
	}
	files := make(map[string][]byte, len(values))
	for family, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		files[family] = raw
	}
	return files, nil
}

// WriteDir 把数据集写入目录
func WriteDir(fs afero.Fs, dir string, b *dataset.Bundle) error {
	files, err := Files(b)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for family, raw := range files {
		if err := afero.WriteFile(fs, filepath.Join(dir, family+".json"), raw, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// StaticLoader 直接返回给定数据集的加载器
type StaticLoader struct {
	Bundle *dataset.Bundle
	Err    error
}

// LoadAll 实现 seeder 的加载器接口
func (l StaticLoader) LoadAll(ctx context.Context) (*dataset.Bundle, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Bundle, nil
}
