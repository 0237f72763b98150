// Package database 端上双库：参考库与可写库的连接管理和查询封装
package database

import (
	"context"
	"fmt"
	"time"

	"tarotstore/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sidecars SQLite 在库文件旁边生成的文件
var sidecars = []string{"-wal", "-shm", "-journal"}

// dsn 构造 mattn/go-sqlite3 连接串
func dsn(path string, readOnly bool, busyTimeout time.Duration) string {
	mode := "rwc"
	if readOnly {
		mode = "ro"
	}
	return fmt.Sprintf("file:%s?mode=%s&_busy_timeout=%d&_foreign_keys=1",
		path, mode, busyTimeout.Milliseconds())
}

// Connect 打开一个 SQLite 句柄。
// 每个句柄只保留一个连接，同一句柄上的调用由连接池排队串行执行
func Connect(path string, readOnly bool, busyTimeout time.Duration, _logger gormlogger.Interface) (*gorm.DB, error) {
	if _logger == nil {
		_logger = logger.NewGormLogger()
	}

	db, err := gorm.Open(sqlite.Open(dsn(path, readOnly, busyTimeout)), &gorm.Config{
		Logger: _logger,
	})
	if err != nil {
		logger.ErrorString("数据库", "连接", err.Error())
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// 获取底层的 sqlDB
	sqlDB, err := db.DB()
	if err != nil {
		logger.ErrorString("数据库", "获取底层SQL", err.Error())
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// Disconnect 关闭句柄，nil 句柄直接忽略
func Disconnect(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UserVersion 读取 PRAGMA user_version
func UserVersion(ctx context.Context, db *gorm.DB) (int, error) {
	var version int
	if err := db.WithContext(ctx).Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, err
	}
	return version, nil
}
