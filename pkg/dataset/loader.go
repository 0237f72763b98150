package dataset

import (
	"context"
	"fmt"

	"tarotstore/app/models/card"
	"tarotstore/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Loader 按表族拉取并校验数据集
type Loader struct {
	source Source
	suits  []string
}

// NewLoader suits 为空时使用默认四花色
func NewLoader(source Source, suits []string) *Loader {
	if len(suits) == 0 {
		suits = card.KnownSuits
	}
	return &Loader{source: source, suits: suits}
}

// load 拉取、解码并执行表族的行校验
func load[T any](ctx context.Context, l *Loader, family string, validate func([]T) error) (*Dataset[T], error) {
	raw, err := l.source.Fetch(ctx, family)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", family, err)
	}
	ds, err := decode[T](family, raw)
	if err != nil {
		return nil, err
	}
	if err := validate(ds.Data); err != nil {
		return nil, err
	}
	logger.DebugString("数据集", family, fmt.Sprintf("版本 %s，共 %d 行", ds.Version, len(ds.Data)))
	return ds, nil
}

// LoadCardStyles 牌面风格
func (l *Loader) LoadCardStyles(ctx context.Context) (*Dataset[CardStyleRow], error) {
	return load(ctx, l, FamilyCardStyle, func(rows []CardStyleRow) error {
		return validateRows(FamilyCardStyle, rows, cardStyleRules)
	})
}

// LoadDimensions 解读维度
func (l *Loader) LoadDimensions(ctx context.Context) (*Dataset[DimensionRow], error) {
	return load(ctx, l, FamilyDimension, func(rows []DimensionRow) error {
		return validateRows(FamilyDimension, rows, dimensionRules)
	})
}

// LoadSpreads 牌阵
func (l *Loader) LoadSpreads(ctx context.Context) (*Dataset[SpreadRow], error) {
	return load(ctx, l, FamilySpread, validateSpreads)
}

// LoadCards 塔罗牌，含整副牌数量校验
func (l *Loader) LoadCards(ctx context.Context) (*Dataset[CardRow], error) {
	return load(ctx, l, FamilyCard, func(rows []CardRow) error {
		return validateCards(rows, l.suits)
	})
}

// LoadInterpretations 牌义，含正逆位数量校验
func (l *Loader) LoadInterpretations(ctx context.Context) (*Dataset[InterpretationRow], error) {
	return load(ctx, l, FamilyCardInterpretation, validateInterpretations)
}

// LoadInterpretationDimensions 牌义维度
func (l *Loader) LoadInterpretationDimensions(ctx context.Context) (*Dataset[InterpretationDimensionRow], error) {
	return load(ctx, l, FamilyCardInterpretationDimension, func(rows []InterpretationDimensionRow) error {
		return validateRows(FamilyCardInterpretationDimension, rows, interpretationDimensionRules)
	})
}

// LoadAll 并发加载全部表族，任意一个失败即整体失败，不返回部分结果
func (l *Loader) LoadAll(ctx context.Context) (*Bundle, error) {
	var b Bundle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		b.CardStyles, err = l.LoadCardStyles(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.Dimensions, err = l.LoadDimensions(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.Spreads, err = l.LoadSpreads(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.Cards, err = l.LoadCards(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.Interpretations, err = l.LoadInterpretations(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.InterpretationDimensions, err = l.LoadInterpretationDimensions(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.ErrorString("数据集", "加载", err.Error())
		return nil, err
	}
	logger.InfoJSON("数据集", "加载完成", b.Counts())
	return &b, nil
}
