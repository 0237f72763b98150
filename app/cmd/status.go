package cmd

import (
	"tarotstore/bootstrap"
	"tarotstore/pkg/logger"

	"github.com/spf13/cobra"
)

// NewStatusCommand 执行一次启动流程并输出诊断信息
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "初始化双库并输出存储状态与导入记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := bootstrap.SetupDB(ctx)
			if err != nil {
				return err
			}
			defer func() {
				logger.LogIf(store.Close())
			}()

			loader, err := bootstrap.SetupDataset()
			if err != nil {
				return err
			}
			engine, err := bootstrap.SetupSeeder(ctx, store, loader)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"store":  store.Status(),
				"import": engine.LastSession(),
			})
		},
	}
}
