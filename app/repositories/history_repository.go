// Package repositories 数据访问层
package repositories

import (
	"context"
	"errors"

	"tarotstore/app/models/history"
	"tarotstore/pkg/database"

	"gorm.io/gorm"
)

var (
	// ErrHistoryNotFound 记录不存在或不属于该用户
	ErrHistoryNotFound = errors.New("history record not found")
	// ErrHistoryExists 调用方指定的 id 已被占用
	ErrHistoryExists = errors.New("history record already exists")
)

// HistoryRepository 用户历史，可写库
type HistoryRepository struct {
	store *database.Manager
}

// NewHistoryRepository 创建仓库实例
func NewHistoryRepository(store *database.Manager) *HistoryRepository {
	return &HistoryRepository{store: store}
}

func (r *HistoryRepository) db(ctx context.Context) (*gorm.DB, error) {
	db, err := r.store.WritableHandle()
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// Create 创建历史记录
func (r *HistoryRepository) Create(ctx context.Context, record *history.Record) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&history.Record{}).Where("id = ?", record.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrHistoryExists
		}
		return tx.Create(record).Error
	})
}

// Update 更新历史记录
func (r *HistoryRepository) Update(ctx context.Context, record *history.Record) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	return db.Save(record).Error
}

// Delete 删除用户的一条记录
func (r *HistoryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.store.ExecuteWritable(ctx, "DELETE FROM user_history WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return err
	}
	if res.AffectedRows == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

// DeleteByUser 删除用户的全部记录
func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.store.ExecuteWritable(ctx, "DELETE FROM user_history WHERE user_id = ?", userID)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// GetByID 获取单条记录
func (r *HistoryRepository) GetByID(ctx context.Context, userID, id string) (*history.Record, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var record history.Record
	// 使用复合条件确保安全性
	err = db.Where("user_id = ? AND id = ?", userID, id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHistoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUserID 获取用户的历史记录，按占卜时间倒序分页
func (r *HistoryRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int) ([]history.Record, int64, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var records []history.Record
	var total int64

	// 获取总数
	if err := db.Model(&history.Record{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询，命中 (user_id, timestamp) 索引
	err = db.Where("user_id = ?", userID).
		Order("timestamp DESC, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error

	return records, total, err
}
