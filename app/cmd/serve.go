package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tarotstore/bootstrap"
	"tarotstore/pkg/config"
	"tarotstore/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// NewServeCommand 启动服务
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "初始化双库、导入参考数据并启动本地接口",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 初始化失败时不能继续提供占卜功能
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

	if !config.GetBool("app.debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	bootstrap.SetupRoute(router, store, engine)

	server := &http.Server{
		Addr:    ":" + config.GetString("app.port"),
		Handler: router,
	}
	return start(ctx, server)
}

// start 启动服务器并处理优雅关闭
func start(ctx context.Context, server *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.InfoString("HTTP", "启动", "监听 "+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.InfoString("HTTP", "关闭", "正在关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.InfoString("HTTP", "关闭", "服务器已成功关闭")
	return nil
}
