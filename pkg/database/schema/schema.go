// Package schema 两个库的表结构定义
//
// 参考库（随应用打包、每次启动刷新）与可写库（用户历史，长期保存）的
// 建表语句都集中在这里，导入引擎与查询层共用同一份列约定。
package schema

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// 参考库表名
const (
	TableCardStyle                   = "card_style"
	TableDimension                   = "dimension"
	TableSpread                      = "spread"
	TableCard                        = "card"
	TableCardInterpretation          = "card_interpretation"
	TableCardInterpretationDimension = "card_interpretation_dimension"
)

// 可写库表名
const (
	TableUserHistory = "user_history"
)

// WritableVersion 可写库结构版本，写入 PRAGMA user_version
const WritableVersion = 1

// Table 一张表的定义：建表语句与附属索引
type Table struct {
	Name    string
	DDL     string
	Indexes []string
}

// Reference 参考库的全部表，顺序即外键依赖顺序（父表在前）
var Reference = []Table{
	{
		Name: TableCardStyle,
		DDL: `CREATE TABLE IF NOT EXISTS card_style (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	image_base_url TEXT NOT NULL
)`,
	},
	{
		Name: TableDimension,
		DDL: `CREATE TABLE IF NOT EXISTS dimension (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	aspect TEXT,
	aspect_type INTEGER
)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_dimension_category ON dimension(category, aspect_type)`,
		},
	},
	{
		Name: TableSpread,
		DDL: `CREATE TABLE IF NOT EXISTS spread (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	card_count INTEGER NOT NULL
)`,
	},
	{
		Name: TableCard,
		DDL: `CREATE TABLE IF NOT EXISTS card (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	arcana TEXT NOT NULL CHECK (arcana IN ('Major', 'Minor')),
	suit TEXT,
	number INTEGER NOT NULL,
	image_url TEXT NOT NULL,
	style_id INTEGER NOT NULL REFERENCES card_style(id),
	deck TEXT NOT NULL
)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_card_style_id ON card(style_id)`,
			`CREATE INDEX IF NOT EXISTS idx_card_arcana_suit ON card(arcana, suit)`,
		},
	},
	{
		Name: TableCardInterpretation,
		DDL: `CREATE TABLE IF NOT EXISTS card_interpretation (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	card_id INTEGER NOT NULL REFERENCES card(id),
	direction TEXT NOT NULL CHECK (direction IN ('upright', 'reversed')),
	summary TEXT NOT NULL,
	detail TEXT,
	UNIQUE (card_id, direction)
)`,
	},
	{
		Name: TableCardInterpretationDimension,
		DDL: `CREATE TABLE IF NOT EXISTS card_interpretation_dimension (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	interpretation_id INTEGER NOT NULL REFERENCES card_interpretation(id),
	dimension_id INTEGER NOT NULL REFERENCES dimension(id),
	aspect TEXT,
	aspect_type INTEGER,
	content TEXT NOT NULL
)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_cid_interpretation ON card_interpretation_dimension(interpretation_id)`,
			`CREATE INDEX IF NOT EXISTS idx_cid_dimension ON card_interpretation_dimension(dimension_id)`,
		},
	},
}

// Writable 可写库的全部表
//
// interpretation_mode 同时接受 basic 与 default，两者含义相同。
var Writable = []Table{
	{
		Name: TableUserHistory,
		DDL: `CREATE TABLE IF NOT EXISTS user_history (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	spread_id INTEGER NOT NULL,
	card_ids TEXT NOT NULL DEFAULT '[]',
	interpretation_mode TEXT NOT NULL CHECK (interpretation_mode IN ('basic', 'default', 'ai')),
	result TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_user_history_user_id ON user_history(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_user_history_timestamp ON user_history(timestamp)`,
			`CREATE INDEX IF NOT EXISTS idx_user_history_user_timestamp ON user_history(user_id, timestamp)`,
		},
	},
}

// RequiredReferenceTables 参考库刷新后必须存在的表
var RequiredReferenceTables = []string{
	TableCard,
	TableCardStyle,
	TableDimension,
	TableCardInterpretation,
	TableSpread,
}

// ImportOrder 导入顺序（按外键依赖）
func ImportOrder() []string {
	names := make([]string, 0, len(Reference))
	for _, t := range Reference {
		names = append(names, t.Name)
	}
	return names
}

// ClearOrder 清空顺序，与导入顺序相反：桥接表先删，父表最后
func ClearOrder() []string {
	order := ImportOrder()
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Lookup 按表名查找定义，两个库都会查
func Lookup(name string) (Table, bool) {
	for _, group := range [][]Table{Reference, Writable} {
		for _, t := range group {
			if t.Name == name {
				return t, true
			}
		}
	}
	return Table{}, false
}

// Apply 在一个事务里执行建表与建索引语句，语句均为 IF NOT EXISTS，可重复执行
func Apply(ctx context.Context, db *gorm.DB, tables []Table) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			if err := tx.Exec(t.DDL).Error; err != nil {
				return fmt.Errorf("create table %s: %w", t.Name, err)
			}
			for _, idx := range t.Indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return fmt.Errorf("create index on %s: %w", t.Name, err)
				}
			}
		}
		return nil
	})
}

// ApplyWritable 可写库独立的初始化入口，同时写入结构版本
func ApplyWritable(ctx context.Context, db *gorm.DB) error {
	if err := Apply(ctx, db, Writable); err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(fmt.Sprintf("PRAGMA user_version = %d", WritableVersion)).Error
}

// ApplyReference 在空库上建立参考表，构建参考库资源时使用
func ApplyReference(ctx context.Context, db *gorm.DB) error {
	return Apply(ctx, db, Reference)
}
