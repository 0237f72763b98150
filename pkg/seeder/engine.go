// Package seeder 参考库导入引擎
//
// 按外键依赖顺序把校验过的数据集写入参考表：
// 每张表在一个事务里完成 计数 → 构建自然键查找表 → 解析引用 → 分批插入，
// 已有数据的表直接跳过，因此每次启动重复执行不会产生重复数据。
package seeder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tarotstore/pkg/database/schema"
	"tarotstore/pkg/dataset"
	"tarotstore/pkg/logger"

	"gorm.io/gorm"
)

// Loader 提供完整数据集
type Loader interface {
	LoadAll(ctx context.Context) (*dataset.Bundle, error)
}

// Engine 导入引擎
type Engine struct {
	db     *gorm.DB
	loader Loader

	mu   sync.Mutex
	last *ImportSession
}

// NewEngine db 为要写入的参考表所在的句柄
func NewEngine(db *gorm.DB, loader Loader) *Engine {
	return &Engine{db: db, loader: loader}
}

// ImportAll 加载数据集并执行一次完整导入，总是返回 session，错误记录在各表状态里
func (e *Engine) ImportAll(ctx context.Context) *ImportSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	session := newSession(schema.ImportOrder())
	defer e.finish(session)

	bundle, err := e.loader.LoadAll(ctx)
	if err != nil {
		logger.ErrorString("导入", "加载数据集", err.Error())
		session.failUnfinished(err)
		return session
	}

	e.run(ctx, session, bundle)
	return session
}

// ImportBundle 用已加载的数据集执行导入
func (e *Engine) ImportBundle(ctx context.Context, bundle *dataset.Bundle) *ImportSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	session := newSession(schema.ImportOrder())
	defer e.finish(session)

	e.run(ctx, session, bundle)
	return session
}

func (e *Engine) finish(session *ImportSession) {
	session.FinishedAt = time.Now()
	e.last = session
}

// run 按依赖顺序逐表导入，父表失败的表不再执行
func (e *Engine) run(ctx context.Context, session *ImportSession, bundle *dataset.Bundle) {
	for _, imp := range importers(bundle) {
		if dep := failedDependency(session, imp.deps); dep != "" {
			session.fail(imp.table, &DependencyError{Table: imp.table, Dependency: dep})
			logger.WarnString("导入", imp.table, "依赖表 "+dep+" 导入失败，跳过")
			continue
		}

		session.Status(imp.table).Status = StatusImporting
		result, err := e.importTable(ctx, imp)
		if err != nil {
			session.fail(imp.table, err)
			logger.ErrorString("导入", imp.table, err.Error())
			continue
		}
		session.complete(imp.table, result)

		if result.Skipped > 0 {
			logger.DebugString("导入", imp.table, fmt.Sprintf("已有 %d 行，跳过", result.Skipped))
		} else {
			logger.InfoString("导入", imp.table, fmt.Sprintf("导入 %d 行", result.Imported))
		}
	}

	logger.InfoString("导入", "完成", fmt.Sprintf("进度 %d%%，失败表 %v", session.TotalProgress, session.Failed()))
}

// importTable 单表导入，全部在一个事务里，失败整表回滚
func (e *Engine) importTable(ctx context.Context, imp importer) (ImportResult, error) {
	var result ImportResult
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(imp.table).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			result = ImportResult{Skipped: count}
			return nil
		}

		imported, err := imp.run(tx)
		if err != nil {
			return err
		}
		result = ImportResult{Imported: imported}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func failedDependency(session *ImportSession, deps []string) string {
	for _, dep := range deps {
		if st := session.Status(dep); st != nil && st.Status == StatusError {
			return dep
		}
	}
	return ""
}

// WithDB 换用另一个句柄，保留最近一次导入记录
func (e *Engine) WithDB(db *gorm.DB) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &Engine{db: db, loader: e.loader, last: e.last}
}

// LastSession 最近一次导入，未导入过时为 nil
func (e *Engine) LastSession() *ImportSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// ClearAllTables 按依赖逆序清空六张参考表，受控重新导入前调用
func (e *Engine) ClearAllTables(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range schema.ClearOrder() {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		logger.WarnString("导入", "清空", "参考表已全部清空")
		return nil
	})
}
