package config

import "tarotstore/pkg/config"

func init() {
	config.Add("dataset", func() map[string]interface{} {
		return map[string]interface{}{
			// 数据集来源：dir（本地目录）或 http（远端）
			"source": config.Env("DATASET_SOURCE", "dir"),

			// 本地数据集目录，每个表族一个 <table>.json
			"dir": config.Env("DATASET_DIR", "assets/datasets"),

			// 远端数据集地址，source=http 时使用
			"base_url": config.Env("DATASET_BASE_URL", ""),

			// 远端请求超时，单位秒
			"timeout": config.Env("DATASET_TIMEOUT", 15),

			// 启动时是否执行导入（参考库资源已预置数据时可关闭）
			"seed_on_start": config.Env("DATASET_SEED_ON_START", true),

			// 小阿卡纳的四个花色
			"suits": config.Env("DATASET_SUITS", "Wands,Cups,Swords,Pentacles"),
		}
	})
}
