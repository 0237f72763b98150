package bootstrap

import (
	"fmt"
	"time"

	"tarotstore/pkg/config"
	"tarotstore/pkg/dataset"
	"tarotstore/pkg/logger"
)

// NewDatasetSource 按 dataset.source 选择本地目录或远端
func NewDatasetSource() (dataset.Source, error) {
	switch config.GetString("dataset.source") {
	case "dir", "":
		return dataset.NewDirSource(nil, config.GetString("dataset.dir")), nil
	case "http":
		baseURL := config.GetString("dataset.base_url")
		if baseURL == "" {
			return nil, fmt.Errorf("dataset.base_url is required when dataset.source is http")
		}
		return dataset.NewHTTPSource(baseURL, time.Duration(config.GetInt("dataset.timeout"))*time.Second), nil
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", config.GetString("dataset.source"))
	}
}

// SetupDataset 创建数据集加载器
func SetupDataset() (*dataset.Loader, error) {
	source, err := NewDatasetSource()
	if err != nil {
		logger.ErrorString("数据集", "初始化", err.Error())
		return nil, err
	}
	return dataset.NewLoader(source, config.GetStringSlice("dataset.suits")), nil
}
