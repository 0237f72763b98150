// Package bootstrap 组装各个服务对象，生命周期由调用方持有
package bootstrap

import (
	"context"
	"time"

	"tarotstore/pkg/config"
	"tarotstore/pkg/database"
	"tarotstore/pkg/logger"

	"github.com/spf13/afero"
)

// NewStore 按配置创建双库 Manager，不做任何 IO
func NewStore() *database.Manager {
	return database.NewManager(database.Options{
		Dir:           config.GetString("database.dir"),
		ReferenceFile: config.GetString("database.reference"),
		WritableFile:  config.GetString("database.writable"),
		AssetFs:       afero.NewReadOnlyFs(afero.NewOsFs()),
		AssetPath:     config.GetString("database.asset"),
		BusyTimeout:   time.Duration(config.GetInt("database.busy_timeout")) * time.Millisecond,
		GormLogger:    logger.NewGormLogger(),
	})
}

// SetupDB 创建并初始化双库，失败时返回的错误为致命错误
func SetupDB(ctx context.Context) (*database.Manager, error) {
	store := NewStore()
	status, err := store.Initialize(ctx)
	if err != nil {
		logger.ErrorString("数据库", "初始化", err.Error())
		return nil, err
	}
	logger.InfoJSON("数据库", "状态", status)
	return store, nil
}
