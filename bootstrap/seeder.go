package bootstrap

import (
	"context"
	"fmt"

	"tarotstore/pkg/config"
	"tarotstore/pkg/database"
	"tarotstore/pkg/logger"
	"tarotstore/pkg/seeder"
)

// SetupSeeder 在参考库上执行导入，完成后把参考库切换为只读。
// 单表导入失败只记录在 session 里；数据集加载失败直接返回错误。
// dataset.seed_on_start 关闭时只切换只读，返回的引擎仍可用于诊断
func SetupSeeder(ctx context.Context, store *database.Manager, loader seeder.Loader) (*seeder.Engine, error) {
	reference, err := store.ReferenceHandle()
	if err != nil {
		return nil, err
	}
	engine := seeder.NewEngine(reference, loader)

	if config.GetBool("dataset.seed_on_start") {
		// 数据集校验失败属于致命错误，不进入导入
		bundle, err := loader.LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		session := engine.ImportBundle(ctx, bundle)
		if !session.IsCompleted {
			logger.WarnString("导入", "未完成", fmt.Sprintf("失败的表: %v", session.Failed()))
		}
	}

	if err := store.SealReference(ctx); err != nil {
		return nil, err
	}
	// 只读句柄替换了原句柄，引擎改用新句柄供诊断查询
	sealed, err := store.ReferenceHandle()
	if err != nil {
		return nil, err
	}
	return engine.WithDB(sealed), nil
}
