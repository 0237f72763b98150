package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		LogIf(errors.New("boom"))
		LogWarnIf(nil)
		InfoString("数据库", "初始化", "ok")
		Dump(map[string]int{"card": 78})
	})
}

func TestInitLoggerWritesFile(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	filename := filepath.Join(t.TempDir(), "logs.log")
	InitLogger(filename, 1, 1, 1, false, "single", "debug")
	ErrorString("导入", "card", "style unknown-style not found")
	require.NoError(t, Logger.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "unknown-style")
}

func TestMicrosecondsStr(t *testing.T) {
	assert.Equal(t, "1.500ms", microsecondsStr(1500*time.Microsecond))
}

func TestJSONString(t *testing.T) {
	type status struct {
		Table  string `json:"table"`
		Status string `json:"status"`
	}
	assert.Equal(t, `{"table":"card","status":"completed"}`, jsonString(status{Table: "card", Status: "completed"}))
	assert.Equal(t, "", jsonString(make(chan int)))
}
