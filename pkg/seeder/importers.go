package seeder

import (
	"tarotstore/app/models/card"
	"tarotstore/app/models/cardstyle"
	"tarotstore/app/models/dimension"
	"tarotstore/app/models/interpretation"
	"tarotstore/app/models/spread"
	"tarotstore/pkg/database/schema"
	"tarotstore/pkg/dataset"

	"gorm.io/gorm"
)

// batchSize 每批插入行数
const batchSize = 100

// importer 单表导入器，run 在表为空时于事务内执行
type importer struct {
	table string
	deps  []string
	run   func(tx *gorm.DB) (int, error)
}

// importers 按外键依赖排好序的导入器
func importers(b *dataset.Bundle) []importer {
	return []importer{
		{
			table: schema.TableCardStyle,
			run:   func(tx *gorm.DB) (int, error) { return importCardStyles(tx, b.CardStyles) },
		},
		{
			table: schema.TableDimension,
			run:   func(tx *gorm.DB) (int, error) { return importDimensions(tx, b.Dimensions) },
		},
		{
			table: schema.TableSpread,
			run:   func(tx *gorm.DB) (int, error) { return importSpreads(tx, b.Spreads) },
		},
		{
			table: schema.TableCard,
			deps:  []string{schema.TableCardStyle},
			run:   func(tx *gorm.DB) (int, error) { return importCards(tx, b.Cards) },
		},
		{
			table: schema.TableCardInterpretation,
			deps:  []string{schema.TableCard},
			run:   func(tx *gorm.DB) (int, error) { return importInterpretations(tx, b.Interpretations) },
		},
		{
			table: schema.TableCardInterpretationDimension,
			deps:  []string{schema.TableCardInterpretation, schema.TableDimension},
			run: func(tx *gorm.DB) (int, error) {
				return importInterpretationDimensions(tx, b.InterpretationDimensions)
			},
		},
	}
}

// keyRow 查找表的一行：自然键 -> 主键
type keyRow struct {
	ID        uint64 `gorm:"column:id"`
	LookupKey string `gorm:"column:lookup_key"`
}

// lookup 查询父表构建自然键查找表，父表里出现重复键直接报错
func lookup(tx *gorm.DB, table, sql string) (map[string]uint64, error) {
	var rows []keyRow
	if err := tx.Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(rows))
	for _, row := range rows {
		if _, ok := ids[row.LookupKey]; ok {
			return nil, &DuplicateKeyError{Table: table, Key: row.LookupKey}
		}
		ids[row.LookupKey] = row.ID
	}
	return ids, nil
}

// uniqueKeys 数据集内的自然键不能重复
func uniqueKeys[T any](table string, rows []T, key func(T) string) error {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			return &DuplicateKeyError{Table: table, Key: k}
		}
		seen[k] = struct{}{}
	}
	return nil
}

// insert 分批插入
func insert[M any](tx *gorm.DB, models []M) (int, error) {
	if len(models) == 0 {
		return 0, nil
	}
	if err := tx.CreateInBatches(&models, batchSize).Error; err != nil {
		return 0, err
	}
	return len(models), nil
}

func rowsOf[T any](ds *dataset.Dataset[T]) []T {
	if ds == nil {
		return nil
	}
	return ds.Data
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func importCardStyles(tx *gorm.DB, ds *dataset.Dataset[dataset.CardStyleRow]) (int, error) {
	rows := rowsOf(ds)
	if err := uniqueKeys(schema.TableCardStyle, rows, func(r dataset.CardStyleRow) string { return r.Name }); err != nil {
		return 0, err
	}
	models := make([]cardstyle.CardStyle, 0, len(rows))
	for _, row := range rows {
		models = append(models, cardstyle.CardStyle{
			Name:         row.Name,
			ImageBaseURL: row.ImageBaseURL,
		})
	}
	return insert(tx, models)
}

func importDimensions(tx *gorm.DB, ds *dataset.Dataset[dataset.DimensionRow]) (int, error) {
	rows := rowsOf(ds)
	if err := uniqueKeys(schema.TableDimension, rows, func(r dataset.DimensionRow) string { return r.Name }); err != nil {
		return 0, err
	}
	models := make([]dimension.Dimension, 0, len(rows))
	for _, row := range rows {
		models = append(models, dimension.Dimension{
			Name:        row.Name,
			Category:    row.Category,
			Description: row.Description,
			Aspect:      row.Aspect,
			AspectType:  row.AspectType,
		})
	}
	return insert(tx, models)
}

func importSpreads(tx *gorm.DB, ds *dataset.Dataset[dataset.SpreadRow]) (int, error) {
	rows := rowsOf(ds)
	models := make([]spread.Spread, 0, len(rows))
	for _, row := range rows {
		models = append(models, spread.Spread{
			Name:        row.Name,
			Description: row.Description,
			CardCount:   intValue(row.CardCount),
		})
	}
	return insert(tx, models)
}

func importCards(tx *gorm.DB, ds *dataset.Dataset[dataset.CardRow]) (int, error) {
	rows := rowsOf(ds)
	if err := uniqueKeys(schema.TableCard, rows, func(r dataset.CardRow) string { return r.Name }); err != nil {
		return 0, err
	}

	styles, err := lookup(tx, schema.TableCardStyle, "SELECT id, name AS lookup_key FROM card_style")
	if err != nil {
		return 0, err
	}

	models := make([]card.Card, 0, len(rows))
	for _, row := range rows {
		styleID, ok := styles[row.StyleName]
		if !ok {
			return 0, &ReferentialIntegrityError{Table: schema.TableCard, Field: "style_name", Key: row.StyleName}
		}
		models = append(models, card.Card{
			Name:     row.Name,
			Arcana:   card.Arcana(row.Arcana),
			Suit:     row.Suit,
			Number:   intValue(row.Number),
			ImageURL: row.ImageURL,
			StyleID:  styleID,
			Deck:     row.Deck,
		})
	}
	return insert(tx, models)
}

func importInterpretations(tx *gorm.DB, ds *dataset.Dataset[dataset.InterpretationRow]) (int, error) {
	rows := rowsOf(ds)
	if err := uniqueKeys(schema.TableCardInterpretation, rows, dataset.InterpretationRow.Key); err != nil {
		return 0, err
	}

	cards, err := lookup(tx, schema.TableCard, "SELECT id, name AS lookup_key FROM card")
	if err != nil {
		return 0, err
	}

	models := make([]interpretation.Interpretation, 0, len(rows))
	for _, row := range rows {
		cardID, ok := cards[row.CardName]
		if !ok {
			return 0, &ReferentialIntegrityError{Table: schema.TableCardInterpretation, Field: "card_name", Key: row.CardName}
		}
		models = append(models, interpretation.Interpretation{
			CardID:    cardID,
			Direction: interpretation.Direction(row.Direction),
			Summary:   row.Summary,
			Detail:    row.Detail,
		})
	}
	return insert(tx, models)
}

func importInterpretationDimensions(tx *gorm.DB, ds *dataset.Dataset[dataset.InterpretationDimensionRow]) (int, error) {
	rows := rowsOf(ds)

	interpretations, err := lookup(tx, schema.TableCardInterpretation,
		`SELECT ci.id AS id, c.name || '-' || ci.direction AS lookup_key
		 FROM card_interpretation ci JOIN card c ON c.id = ci.card_id`)
	if err != nil {
		return 0, err
	}
	dimensions, err := lookup(tx, schema.TableDimension, "SELECT id, name AS lookup_key FROM dimension")
	if err != nil {
		return 0, err
	}

	models := make([]interpretation.InterpretationDimension, 0, len(rows))
	for _, row := range rows {
		interpretationID, ok := interpretations[row.InterpretationKey()]
		if !ok {
			return 0, &ReferentialIntegrityError{
				Table: schema.TableCardInterpretationDimension,
				Field: "card_name-direction",
				Key:   row.InterpretationKey(),
			}
		}
		dimensionID, ok := dimensions[row.DimensionName]
		if !ok {
			return 0, &ReferentialIntegrityError{
				Table: schema.TableCardInterpretationDimension,
				Field: "dimension_name",
				Key:   row.DimensionName,
			}
		}
		models = append(models, interpretation.InterpretationDimension{
			InterpretationID: interpretationID,
			DimensionID:      dimensionID,
			Aspect:           row.Aspect,
			AspectType:       row.AspectType,
			Content:          row.Content,
		})
	}
	return insert(tx, models)
}
