package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
)

// Source 数据集文件来源，每个表族一个文件
type Source interface {
	Fetch(ctx context.Context, family string) ([]byte, error)
}

// DirSource 从目录读取 <family>.json
type DirSource struct {
	fs  afero.Fs
	dir string
}

// NewDirSource 目录数据源，fs 为 nil 时使用本地文件系统
func NewDirSource(fs afero.Fs, dir string) *DirSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DirSource{fs: fs, dir: dir}
}

// Fetch 读取文件
func (s *DirSource) Fetch(ctx context.Context, family string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return afero.ReadFile(s.fs, filepath.Join(s.dir, family+".json"))
}

// HTTPSource 从远端拉取 <baseURL>/<family>.json
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource HTTP 数据源
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	return &HTTPSource{client: client}
}

// Fetch 拉取文件
func (s *HTTPSource) Fetch(ctx context.Context, family string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get("/" + family + ".json")
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", family, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", family, resp.StatusCode())
	}
	return resp.Body(), nil
}
