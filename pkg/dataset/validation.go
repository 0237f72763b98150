package dataset

import (
	"bytes"
	"net/url"
	"sort"
	"strings"

	"tarotstore/app/models/card"
	"tarotstore/app/models/interpretation"
	"tarotstore/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/thedevsaddam/govalidator"
)

// 各表族的行校验规则
var (
	cardStyleRules = govalidator.MapData{
		"name": []string{"required"},
	}
	dimensionRules = govalidator.MapData{
		"name":     []string{"required"},
		"category": []string{"required"},
	}
	spreadRules = govalidator.MapData{
		"name": []string{"required"},
	}
	cardRules = govalidator.MapData{
		"name":       []string{"required"},
		"arcana":     []string{"required", "in:Major,Minor"},
		"image_url":  []string{"required"},
		"style_name": []string{"required"},
		"deck":       []string{"required"},
	}
	interpretationRules = govalidator.MapData{
		"card_name": []string{"required"},
		"direction": []string{"required", "in:upright,reversed"},
		"summary":   []string{"required"},
	}
	interpretationDimensionRules = govalidator.MapData{
		"card_name":      []string{"required"},
		"direction":      []string{"required", "in:upright,reversed"},
		"dimension_name": []string{"required"},
		"content":        []string{"required"},
	}
)

// decode 校验信封结构并解码
func decode[T any](family string, raw []byte) (*Dataset[T], error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, invalid(family, -1, "malformed envelope: %v", err)
	}
	for _, key := range envelopeKeys {
		if _, ok := envelope[key]; !ok {
			return nil, invalid(family, -1, "missing envelope field %q", key)
		}
	}
	data := bytes.TrimSpace(envelope["data"])
	if len(data) == 0 || data[0] != '[' {
		return nil, invalid(family, -1, "data field must be an array")
	}

	var ds Dataset[T]
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, invalid(family, -1, "decode rows: %v", err)
	}
	if len(ds.Data) == 0 {
		logger.WarnString("数据集", family, "data 为空数组")
	}
	return &ds, nil
}

// validateRows 逐行按规则校验
func validateRows[T any](family string, rows []T, rules govalidator.MapData) error {
	for i := range rows {
		opts := govalidator.Options{
			Data:  &rows[i],
			Rules: rules,
		}
		if errs := govalidator.New(opts).ValidateStruct(); len(errs) > 0 {
			return invalid(family, i, "%s", formatErrors(errs))
		}
	}
	return nil
}

// formatErrors 按字段名排序拼接，保证错误信息稳定
func formatErrors(errs url.Values) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, strings.Join(errs[field], "; "))
	}
	return strings.Join(parts, "; ")
}

func validateSpreads(rows []SpreadRow) error {
	if err := validateRows(FamilySpread, rows, spreadRules); err != nil {
		return err
	}
	for i, row := range rows {
		if row.CardCount == nil {
			return invalid(FamilySpread, i, "the card_count field is required")
		}
		if *row.CardCount <= 0 {
			return invalid(FamilySpread, i, "card_count must be positive, got %d", *row.CardCount)
		}
	}
	return nil
}

// validateCards 必填字段 + 78 / 22 / 56 / 4×14
func validateCards(rows []CardRow, suits []string) error {
	if err := validateRows(FamilyCard, rows, cardRules); err != nil {
		return err
	}

	known := make(map[string]int, len(suits))
	for _, suit := range suits {
		known[suit] = 0
	}

	var major, minor int
	for i, row := range rows {
		if row.Number == nil {
			return invalid(FamilyCard, i, "the number field is required")
		}
		switch card.Arcana(row.Arcana) {
		case card.ArcanaMajor:
			major++
			if row.Suit != nil {
				return invalid(FamilyCard, i, "major arcana %q must not have a suit", row.Name)
			}
		case card.ArcanaMinor:
			minor++
			if row.Suit == nil {
				return invalid(FamilyCard, i, "minor arcana %q must have a suit", row.Name)
			}
			if _, ok := known[*row.Suit]; !ok {
				return invalid(FamilyCard, i, "unknown suit %q on %q", *row.Suit, row.Name)
			}
			known[*row.Suit]++
		}
	}

	if len(rows) != card.DeckSize {
		return invalid(FamilyCard, -1, "expected %d cards, got %d", card.DeckSize, len(rows))
	}
	if major != card.MajorCount {
		return invalid(FamilyCard, -1, "expected %d major arcana, got %d", card.MajorCount, major)
	}
	if minor != card.MinorCount {
		return invalid(FamilyCard, -1, "expected %d minor arcana, got %d", card.MinorCount, minor)
	}
	if len(known) != card.SuitCount {
		return invalid(FamilyCard, -1, "expected %d known suits, configured %d", card.SuitCount, len(known))
	}
	for _, suit := range suits {
		if known[suit] != card.CardsPerSuit {
			return invalid(FamilyCard, -1, "suit %s: expected %d cards, got %d", suit, card.CardsPerSuit, known[suit])
		}
	}
	return nil
}

// validateInterpretations 必填字段 + 156 = 78 正位 + 78 逆位
func validateInterpretations(rows []InterpretationRow) error {
	if err := validateRows(FamilyCardInterpretation, rows, interpretationRules); err != nil {
		return err
	}

	var upright, reversed int
	for _, row := range rows {
		switch interpretation.Direction(row.Direction) {
		case interpretation.DirectionUpright:
			upright++
		case interpretation.DirectionReversed:
			reversed++
		}
	}

	if len(rows) != 2*card.DeckSize {
		return invalid(FamilyCardInterpretation, -1, "expected %d interpretations, got %d", 2*card.DeckSize, len(rows))
	}
	if upright != card.DeckSize || reversed != card.DeckSize {
		return invalid(FamilyCardInterpretation, -1, "expected %d upright and %d reversed, got %d and %d",
			card.DeckSize, card.DeckSize, upright, reversed)
	}
	return nil
}
