package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"tarotstore/pkg/config"
	"tarotstore/pkg/database"
	"tarotstore/pkg/database/schema"
	"tarotstore/pkg/dataset"
	"tarotstore/pkg/logger"
	"tarotstore/pkg/seeder"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// SeedOptions seed 命令参数
type SeedOptions struct {
	Out  string
	Data string
}

// NewSeedCommand 由数据集目录构建随应用打包的参考库资源
func NewSeedCommand() *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "由数据集构建参考库资源文件",
		Long: `在一个全新的 SQLite 文件上建立参考表，加载并校验数据集目录中的六个表族，
按依赖顺序导入。输出文件即 database.asset 指向的内置资源。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "输出文件，默认为 database.asset")
	cmd.Flags().StringVar(&opts.Data, "data", "", "数据集目录，默认为 dataset.dir")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	ctx := cmd.Context()
	out := opts.Out
	if out == "" {
		out = config.GetString("database.asset")
	}
	data := opts.Data
	if data == "" {
		data = config.GetString("dataset.dir")
	}

	// 数据集先于建库校验，校验失败不产生任何文件
	loader := dataset.NewLoader(dataset.NewDirSource(afero.NewOsFs(), data), config.GetStringSlice("dataset.suits"))
	bundle, err := loader.LoadAll(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return err
	}

	db, err := database.Connect(out, false, 0, logger.NewGormLogger())
	if err != nil {
		return err
	}
	defer func() {
		logger.LogIf(database.Disconnect(db))
	}()

	if err := schema.ApplyReference(ctx, db); err != nil {
		return err
	}
	session := seeder.NewEngine(db, loader).ImportBundle(ctx, bundle)
	if err := printJSON(cmd.OutOrStdout(), session); err != nil {
		return err
	}
	if !session.IsCompleted {
		return fmt.Errorf("seed incomplete, failed tables: %v", session.Failed())
	}
	return nil
}
