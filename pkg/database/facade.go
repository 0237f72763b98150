package database

import (
	"context"

	"gorm.io/gorm"
)

// ExecResult 写语句的执行结果
type ExecResult struct {
	AffectedRows int64 `json:"affected_rows"`
	InsertID     int64 `json:"insert_id"` // last_insert_rowid()，非插入语句时为连接上一次插入的 rowid
}

// Statement 批量执行中的一条语句
type Statement struct {
	SQL  string
	Args []interface{}
}

// Query 查询多行，结果按列名映射到 T（结构体按 gorm column 标签）
func Query[T any](ctx context.Context, db *gorm.DB, sql string, args ...interface{}) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, &QueryError{SQL: sql, Err: err}
	}
	return rows, nil
}

// QueryFirst 查询第一行，没有结果时返回 nil, nil
func QueryFirst[T any](ctx context.Context, db *gorm.DB, sql string, args ...interface{}) (*T, error) {
	rows, err := Query[T](ctx, db, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Execute 执行一条写语句
func Execute(ctx context.Context, db *gorm.DB, sql string, args ...interface{}) (ExecResult, error) {
	var result ExecResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = exec(tx, sql, args...)
		return err
	})
	if err != nil {
		return ExecResult{}, &ExecuteError{SQL: sql, Err: err}
	}
	return result, nil
}

// ExecuteBatch 在一个事务里按顺序执行多条语句，任意一条失败则全部回滚
func ExecuteBatch(ctx context.Context, db *gorm.DB, statements []Statement) ([]ExecResult, error) {
	results := make([]ExecResult, 0, len(statements))
	var failed *ExecuteError
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, stmt := range statements {
			r, err := exec(tx, stmt.SQL, stmt.Args...)
			if err != nil {
				failed = &ExecuteError{SQL: stmt.SQL, Index: i, Err: err}
				return failed
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		if failed != nil {
			return nil, failed
		}
		return nil, &ExecuteError{Err: err}
	}
	return results, nil
}

// Transaction 把回调包在引擎的原生事务里，回调返回错误时整体回滚
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if err := db.WithContext(ctx).Transaction(fn); err != nil {
		return &TransactionError{Err: err}
	}
	return nil
}

// exec 同一事务（同一连接）上执行语句并读取 last_insert_rowid
func exec(tx *gorm.DB, sql string, args ...interface{}) (ExecResult, error) {
	res := tx.Exec(sql, args...)
	if res.Error != nil {
		return ExecResult{}, res.Error
	}
	var id int64
	if err := tx.Raw("SELECT last_insert_rowid()").Scan(&id).Error; err != nil {
		return ExecResult{}, err
	}
	return ExecResult{AffectedRows: res.RowsAffected, InsertID: id}, nil
}
