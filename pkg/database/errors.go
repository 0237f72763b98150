package database

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized 在 Initialize 成功之前获取句柄
var ErrNotInitialized = errors.New("database: store is not initialized, call Initialize first")

// AssetMaterializationError 内置参考库资源找不到或无法拷贝，启动必须中止
type AssetMaterializationError struct {
	Asset string
	Err   error
}

func (e *AssetMaterializationError) Error() string {
	return fmt.Sprintf("materialize reference asset %q: %v", e.Asset, e.Err)
}

func (e *AssetMaterializationError) Unwrap() error { return e.Err }

// IntegrityVerificationError 拷贝出来的参考库缺少必需的表，或无法读取表清单（Err 非空）
type IntegrityVerificationError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *IntegrityVerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verify reference store %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("reference store %q is missing required tables: %s", e.Path, strings.Join(e.Missing, ", "))
}

func (e *IntegrityVerificationError) Unwrap() error { return e.Err }

// QueryError 查询被引擎拒绝
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (sql: %s)", e.Err, e.SQL)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ExecuteError 写语句被引擎拒绝，Index 为批量执行中出错语句的下标
type ExecuteError struct {
	SQL   string
	Index int
	Err   error
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("execute failed at statement %d: %v (sql: %s)", e.Index, e.Err, e.SQL)
}

func (e *ExecuteError) Unwrap() error { return e.Err }

// TransactionError 事务回调失败，事务已回滚
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction rolled back: %v", e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
