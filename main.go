package main

import (
	"fmt"
	"os"

	"tarotstore/app/cmd"
	btsConfig "tarotstore/config"
)

// 加载应用程序的基础配置
func init() {
	// 加载 config 目录下的配置信息
	btsConfig.Initialize()
}

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tarotstore: %v\n", err)
		os.Exit(1)
	}
}
