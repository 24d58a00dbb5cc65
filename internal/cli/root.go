package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"formvalidator/internal/config"
	"formvalidator/internal/logger"
)

// Version 构建版本号（由 -ldflags 注入）
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

var (
	// appConfig 当前命令使用的配置
	appConfig = config.DefaultConfig()
	// configInfo 配置加载元信息
	configInfo config.LoadConfigInfo
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "formvalidator",
	Short: "Convert metadata spreadsheets into validation records",
	Long: `formvalidator reshapes sample, experiment and analysis metadata
worksheets into nested JSON records for the validation service.

Column headers are normalized (repeated "Term Source ID" columns are attached
to the field before them), then every row is built into a record using the
field rules of the sheet's template kind.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute 执行根命令
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

// versionCmd 版本信息
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "formvalidator %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: config.toml next to the executable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

// initConfig 加载配置并初始化日志
func initConfig() error {
	cfg, info, err := config.LoadConfigWithInfo(cfgFile)
	if err != nil {
		return fmt.Errorf("load config %s: %w", info.Path, err)
	}
	appConfig = cfg
	configInfo = info

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.Initialize(cfg.Log.Env, level)
}
