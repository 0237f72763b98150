package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"tarotstore/pkg/app"
	"tarotstore/pkg/database/schema"
	"tarotstore/pkg/logger"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options Manager 的构造参数
type Options struct {
	Dir           string // 两个库文件所在目录
	ReferenceFile string
	WritableFile  string

	AssetFs   afero.Fs // 内置资源所在的文件系统
	AssetPath string

	BusyTimeout time.Duration
	GormLogger  gormlogger.Interface
}

// Manager 持有参考库与可写库两个相互隔离的句柄
type Manager struct {
	opts Options
	fs   afero.Fs // 端上文件系统

	mu          sync.Mutex
	initialized bool
	sealed      bool
	reference   *gorm.DB
	writable    *gorm.DB
	status      StoreStatus
}

// NewManager 创建 Manager，不做任何 IO
func NewManager(opts Options) *Manager {
	if opts.AssetFs == nil {
		opts.AssetFs = afero.NewOsFs()
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = 5 * time.Second
	}
	return &Manager{
		opts: opts,
		fs:   afero.NewOsFs(),
	}
}

// ReferencePath 参考库文件路径
func (m *Manager) ReferencePath() string {
	return filepath.Join(m.opts.Dir, m.opts.ReferenceFile)
}

// WritablePath 可写库文件路径
func (m *Manager) WritablePath() string {
	return filepath.Join(m.opts.Dir, m.opts.WritableFile)
}

// Initialize 准备两个库，同一个 Manager 上重复调用直接返回已有状态。
//
// 参考库：资源拷贝到临时文件，校验必需表，再 rename 覆盖正式文件后打开；
// 可写库：打开（不存在则创建）并建表。两者并行执行。
func (m *Manager) Initialize(ctx context.Context) (StoreStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return m.status, nil
	}

	if err := m.fs.MkdirAll(m.opts.Dir, 0o755); err != nil {
		return StoreStatus{}, fmt.Errorf("create store directory %s: %w", m.opts.Dir, err)
	}

	var reference, writable *gorm.DB
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		db, err := m.bootstrapReference(gctx)
		reference = db
		return err
	})
	g.Go(func() error {
		db, err := m.bootstrapWritable(gctx)
		writable = db
		return err
	})
	if err := g.Wait(); err != nil {
		logger.LogIf(Disconnect(reference))
		logger.LogIf(Disconnect(writable))
		logger.ErrorString("数据库", "初始化", err.Error())
		return StoreStatus{}, err
	}

	version, err := UserVersion(ctx, writable)
	if err != nil {
		logger.LogIf(Disconnect(reference))
		logger.LogIf(Disconnect(writable))
		return StoreStatus{}, fmt.Errorf("read writable store version: %w", err)
	}

	m.reference = reference
	m.writable = writable
	m.initialized = true
	m.sealed = false
	m.status = StoreStatus{
		IsInitialized: true,
		Version:       version,
		LastSync:      app.ISO8601(app.TimenowInTimezone()),
		ReferencePath: m.ReferencePath(),
		WritablePath:  m.WritablePath(),
	}

	logger.InfoString("数据库", "初始化", fmt.Sprintf("参考库 %s 已刷新，可写库 %s 版本 %d",
		m.ReferencePath(), m.WritablePath(), version))
	return m.status, nil
}

// bootstrapReference 原子替换参考库文件并打开句柄
func (m *Manager) bootstrapReference(ctx context.Context) (*gorm.DB, error) {
	live := m.ReferencePath()
	tmp := live + ".tmp"

	if err := removeStoreFiles(m.fs, tmp); err != nil {
		return nil, &AssetMaterializationError{Asset: m.opts.AssetPath, Err: err}
	}
	if err := copyAsset(m.opts.AssetFs, m.opts.AssetPath, m.fs, tmp); err != nil {
		logger.LogIf(removeFile(m.fs, tmp))
		return nil, &AssetMaterializationError{Asset: m.opts.AssetPath, Err: err}
	}

	if err := m.verifyReference(ctx, tmp); err != nil {
		logger.LogIf(removeStoreFiles(m.fs, tmp))
		return nil, err
	}

	if err := removeSidecars(m.fs, live); err != nil {
		return nil, &AssetMaterializationError{Asset: m.opts.AssetPath, Err: err}
	}
	if err := m.fs.Rename(tmp, live); err != nil {
		logger.LogIf(removeFile(m.fs, tmp))
		return nil, &AssetMaterializationError{Asset: m.opts.AssetPath, Err: err}
	}

	return Connect(live, false, m.opts.BusyTimeout, m.opts.GormLogger)
}

// verifyReference 在临时文件上确认必需表都存在
func (m *Manager) verifyReference(ctx context.Context, path string) error {
	db, err := Connect(path, true, m.opts.BusyTimeout, m.opts.GormLogger)
	if err != nil {
		return &AssetMaterializationError{Asset: m.opts.AssetPath, Err: err}
	}
	defer func() {
		logger.LogIf(Disconnect(db))
	}()

	missing, err := missingTables(ctx, db, schema.RequiredReferenceTables)
	if err != nil {
		return &IntegrityVerificationError{Path: m.ReferencePath(), Err: err}
	}
	if len(missing) > 0 {
		return &IntegrityVerificationError{Path: m.ReferencePath(), Missing: missing}
	}
	return nil
}

// bootstrapWritable 打开可写库并建表
func (m *Manager) bootstrapWritable(ctx context.Context) (*gorm.DB, error) {
	db, err := Connect(m.WritablePath(), false, m.opts.BusyTimeout, m.opts.GormLogger)
	if err != nil {
		return nil, err
	}
	if err := schema.ApplyWritable(ctx, db); err != nil {
		logger.LogIf(Disconnect(db))
		return nil, fmt.Errorf("create writable schema: %w", err)
	}
	return db, nil
}

// SealReference 以只读方式重新打开参考库，导入完成后调用
func (m *Manager) SealReference(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if m.sealed {
		return nil
	}

	if err := Disconnect(m.reference); err != nil {
		return err
	}
	db, err := Connect(m.ReferencePath(), true, m.opts.BusyTimeout, m.opts.GormLogger)
	if err != nil {
		// 参考库句柄已经关闭，可写库一并关闭后回到未初始化状态
		logger.LogIf(Disconnect(m.writable))
		m.reset()
		return err
	}
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		logger.LogIf(Disconnect(db))
		return err
	}

	m.reference = db
	m.sealed = true
	m.status.Sealed = true
	logger.DebugString("数据库", "只读", m.ReferencePath())
	return nil
}

// ReferenceHandle 参考库句柄
func (m *Manager) ReferenceHandle() (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || m.reference == nil {
		return nil, ErrNotInitialized
	}
	return m.reference, nil
}

// WritableHandle 可写库句柄
func (m *Manager) WritableHandle() (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || m.writable == nil {
		return nil, ErrNotInitialized
	}
	return m.writable, nil
}

// Status 当前状态
func (m *Manager) Status() StoreStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// ExecuteWritable 在可写库上执行一条写语句
func (m *Manager) ExecuteWritable(ctx context.Context, sql string, args ...interface{}) (ExecResult, error) {
	db, err := m.WritableHandle()
	if err != nil {
		return ExecResult{}, err
	}
	return Execute(ctx, db, sql, args...)
}

// ExecuteBatchWritable 在可写库上原子地执行一组写语句
func (m *Manager) ExecuteBatchWritable(ctx context.Context, statements []Statement) ([]ExecResult, error) {
	db, err := m.WritableHandle()
	if err != nil {
		return nil, err
	}
	return ExecuteBatch(ctx, db, statements)
}

// TransactionWritable 在可写库上执行事务
func (m *Manager) TransactionWritable(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := m.WritableHandle()
	if err != nil {
		return err
	}
	return Transaction(ctx, db, fn)
}

// ResetWritableData 清空用户历史，不触碰参考库
func (m *Manager) ResetWritableData(ctx context.Context) (int64, error) {
	res, err := m.ExecuteWritable(ctx, "DELETE FROM "+schema.TableUserHistory)
	if err != nil {
		return 0, err
	}
	logger.WarnString("数据库", "清空可写库", fmt.Sprintf("删除 %d 条历史记录", res.AffectedRows))
	return res.AffectedRows, nil
}

// FullReset 关闭两个句柄并删除两个库文件，仅用于开发调试
func (m *Manager) FullReset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := []error{
		Disconnect(m.reference),
		Disconnect(m.writable),
		removeStoreFiles(m.fs, m.ReferencePath()),
		removeStoreFiles(m.fs, m.ReferencePath()+".tmp"),
		removeStoreFiles(m.fs, m.WritablePath()),
	}
	m.reset()

	logger.WarnString("数据库", "完全重置", "两个库文件已删除")
	return errors.Join(errs...)
}

// Close 关闭两个句柄，文件保留
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := errors.Join(Disconnect(m.reference), Disconnect(m.writable))
	m.reset()
	return err
}

func (m *Manager) reset() {
	m.reference = nil
	m.writable = nil
	m.initialized = false
	m.sealed = false
	m.status = StoreStatus{}
}

// QueryReference 在参考库上查询
func QueryReference[T any](ctx context.Context, m *Manager, sql string, args ...interface{}) ([]T, error) {
	db, err := m.ReferenceHandle()
	if err != nil {
		return nil, err
	}
	return Query[T](ctx, db, sql, args...)
}

// QueryFirstReference 在参考库上查询第一行
func QueryFirstReference[T any](ctx context.Context, m *Manager, sql string, args ...interface{}) (*T, error) {
	db, err := m.ReferenceHandle()
	if err != nil {
		return nil, err
	}
	return QueryFirst[T](ctx, db, sql, args...)
}

// QueryWritable 在可写库上查询
func QueryWritable[T any](ctx context.Context, m *Manager, sql string, args ...interface{}) ([]T, error) {
	db, err := m.WritableHandle()
	if err != nil {
		return nil, err
	}
	return Query[T](ctx, db, sql, args...)
}

// QueryFirstWritable 在可写库上查询第一行
func QueryFirstWritable[T any](ctx context.Context, m *Manager, sql string, args ...interface{}) (*T, error) {
	db, err := m.WritableHandle()
	if err != nil {
		return nil, err
	}
	return QueryFirst[T](ctx, db, sql, args...)
}
