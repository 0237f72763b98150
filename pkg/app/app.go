// Package app 应用环境与时间相关的辅助函数
package app

import (
	"time"

	"tarotstore/pkg/config"
)

// IsLocal 是否本地开发环境
func IsLocal() bool {
	return config.Get("app.env") == "local"
}

// IsProduction 是否生产环境
func IsProduction() bool {
	return config.Get("app.env") == "production"
}

// IsTesting 是否测试环境
func IsTesting() bool {
	return config.Get("app.env") == "testing"
}

// Location 返回 app.timezone 对应的时区，配置有误时退回 UTC
func Location() *time.Location {
	loc, err := time.LoadLocation(config.GetString("app.timezone", "UTC"))
	if err != nil {
		return time.UTC
	}
	return loc
}

// TimenowInTimezone 获取配置时区下的当前时间
func TimenowInTimezone() time.Time {
	return time.Now().In(Location())
}

// ISO8601 以 RFC3339 格式输出时间，零值输出空字符串
func ISO8601(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
