// Package cmd 命令行入口
package cmd

import (
	"io"

	"tarotstore/bootstrap"
	"tarotstore/pkg/config"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// RootOptions 全局参数
type RootOptions struct {
	Env string
}

// NewRootCommand 根命令，不带子命令时启动服务
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tarotstore",
		Short: "TarotStore 端上双库持久化核心",
		Long:  "管理参考库（随应用打包、每次启动刷新）与可写库（用户历史），并提供本地诊断接口。",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 先初始化配置，再初始化日志
			config.InitConfig(opts.Env)
			bootstrap.SetupLogger()
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Env, "env", "", "加载 .env 文件，例如 --env=testing 将加载 .env.testing 文件")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewResetCommand())

	return cmd
}

// printJSON 以缩进 JSON 输出
func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
