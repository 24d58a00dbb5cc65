package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"formvalidator/internal/logger"
	"formvalidator/internal/server"
	"formvalidator/internal/util"
)

var (
	servePort int
	serveDev  bool
	serveOpen bool
)

// serveCmd 启动 HTTP 服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the conversion HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (ignored when config.toml or FORMVALIDATOR_PORT sets one)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the API status page in a browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	// 命令行参数覆盖配置
	if servePort > 0 && !configInfo.PortSpecified {
		cfg.Server.Port = servePort
	}
	if serveDev {
		cfg.Server.DevMode = true
	}

	srv := server.NewServer(cfg, Version)
	url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr()))
		errCh <- srv.Run()
	}()

	if serveOpen {
		if err := util.OpenBrowser(url); err != nil {
			logger.Log.Warn("cannot open browser", zap.String("url", url), zap.Error(err))
		}
	}

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
