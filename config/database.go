package config

import (
	"tarotstore/pkg/config"
)

func init() {
	config.Add("database", func() map[string]interface{} {
		return map[string]interface{}{
			// 端上数据库文件所在目录，两个库都放在这里
			"dir": config.Env("DB_DIR", "storage/databases"),

			// 参考库文件名，每次冷启动都会从内置资源重新拷贝
			"reference": config.Env("DB_REFERENCE_FILE", "reference.db"),

			// 可写库文件名，只创建一次，不会被刷新覆盖
			"writable": config.Env("DB_WRITABLE_FILE", "writable.db"),

			// 随应用打包的参考库资源
			"asset": config.Env("DB_REFERENCE_ASSET", "assets/reference.db"),

			// SQLite busy_timeout，单位毫秒
			"busy_timeout": config.Env("DB_BUSY_TIMEOUT", 5000),
		}
	})
}
