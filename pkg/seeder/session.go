package seeder

import (
	"time"

	"github.com/google/uuid"
)

// Status 单表导入状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusImporting Status = "importing"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// ImportResult 单表导入结果
type ImportResult struct {
	Imported int   `json:"imported"`
	Skipped  int64 `json:"skipped"`
}

// ImportStatus 单表导入进度
type ImportStatus struct {
	Table  string        `json:"table"`
	Status Status        `json:"status"`
	Result *ImportResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// ImportSession 一次导入的完整记录，出错也会完整返回
type ImportSession struct {
	ID            string          `json:"id"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    time.Time       `json:"finished_at"`
	Statuses      []*ImportStatus `json:"statuses"`
	TotalProgress int             `json:"total_progress"` // 0-100
	IsCompleted   bool            `json:"is_completed"`
}

func newSession(tables []string) *ImportSession {
	s := &ImportSession{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Statuses:  make([]*ImportStatus, 0, len(tables)),
	}
	for _, table := range tables {
		s.Statuses = append(s.Statuses, &ImportStatus{Table: table, Status: StatusPending})
	}
	return s
}

// Status 按表名取状态
func (s *ImportSession) Status(table string) *ImportStatus {
	for _, st := range s.Statuses {
		if st.Table == table {
			return st
		}
	}
	return nil
}

// Failed 出错的表
func (s *ImportSession) Failed() []string {
	var tables []string
	for _, st := range s.Statuses {
		if st.Status == StatusError {
			tables = append(tables, st.Table)
		}
	}
	return tables
}

func (s *ImportSession) complete(table string, result ImportResult) {
	st := s.Status(table)
	st.Status = StatusCompleted
	st.Result = &result
	st.Error = ""
	s.refresh()
}

func (s *ImportSession) fail(table string, err error) {
	st := s.Status(table)
	st.Status = StatusError
	st.Error = err.Error()
	s.refresh()
}

// failUnfinished 把仍处于 pending / importing 的表标记为失败
func (s *ImportSession) failUnfinished(err error) {
	for _, st := range s.Statuses {
		if st.Status == StatusPending || st.Status == StatusImporting {
			st.Status = StatusError
			st.Error = err.Error()
		}
	}
	s.refresh()
}

func (s *ImportSession) refresh() {
	completed := 0
	for _, st := range s.Statuses {
		if st.Status == StatusCompleted {
			completed++
		}
	}
	if len(s.Statuses) == 0 {
		s.TotalProgress = 0
		s.IsCompleted = false
		return
	}
	s.TotalProgress = completed * 100 / len(s.Statuses)
	s.IsCompleted = completed == len(s.Statuses)
}
