// Package config 站点配置信息
package config

import "tarotstore/pkg/config"

func init() {
	config.Add("app", func() map[string]interface{} {
		return map[string]interface{}{

			// 应用名称
			"name": config.Env("APP_NAME", "TarotStore"),

			// 当前环境，用以区分多环境，一般为 local, stage, production, testing
			"env": config.Env("APP_ENV", "production"),

			// 是否进入调试模式
			"debug": config.Env("APP_DEBUG", false),

			// 本地诊断接口端口
			"port": config.Env("APP_PORT", "3000"),

			// 设置时区，日志与历史记录时间戳会使用到
			"timezone": config.Env("TIMEZONE", "Asia/Shanghai"),

			// 本地接口限流，格式见 pkg/limiter
			"api_rate_limit": config.Env("API_RATE_LIMIT", "600-M"),
		}
	})
}
