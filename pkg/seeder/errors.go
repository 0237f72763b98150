package seeder

import "fmt"

// ReferentialIntegrityError 行中的自然键引用在父表里找不到，该表导入中止
type ReferentialIntegrityError struct {
	Table string
	Field string
	Key   string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s: unresolved %s reference %q", e.Table, e.Field, e.Key)
}

// DuplicateKeyError 自然键重复，查找表无法唯一确定目标行
type DuplicateKeyError struct {
	Table string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate natural key %q", e.Table, e.Key)
}

// DependencyError 依赖的父表导入失败，本表未执行
type DependencyError struct {
	Table      string
	Dependency string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: skipped because dependency %s failed", e.Table, e.Dependency)
}
