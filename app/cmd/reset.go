package cmd

import (
	"errors"
	"fmt"

	"tarotstore/bootstrap"
	"tarotstore/pkg/logger"

	"github.com/spf13/cobra"
)

// ResetOptions reset 命令参数
type ResetOptions struct {
	Writable bool
	Full     bool
}

// NewResetCommand 清空可写库或删除两个库文件，仅用于开发调试
func NewResetCommand() *cobra.Command {
	opts := &ResetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "清空用户历史（--writable）或删除两个库文件（--full）",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Writable == opts.Full {
				return errors.New("exactly one of --writable or --full is required")
			}

			if opts.Full {
				if err := bootstrap.NewStore().FullReset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "两个库文件已删除")
				return nil
			}

			ctx := cmd.Context()
			store, err := bootstrap.SetupDB(ctx)
			if err != nil {
				return err
			}
			defer func() {
				logger.LogIf(store.Close())
			}()

			deleted, err := store.ResetWritableData(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已删除 %d 条历史记录\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Writable, "writable", false, "清空可写库中的用户历史")
	cmd.Flags().BoolVar(&opts.Full, "full", false, "删除参考库与可写库文件")

	return cmd
}
