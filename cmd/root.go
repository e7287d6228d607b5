package cmd

import (
	"fmt"
	"os"
	"travel-map/config"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "travel-map",
	Short: "澳洲 16 天行程互动地图服务",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		if cmd.Flags().Changed("data-dir") {
			cfg.Data.Dir = dataDir
			cfg.Data.BaseURL = ""
		} else {
			dataDir = cfg.Data.Dir
		}

		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "行程 JSON 文档所在目录")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出详细信息")
}

// Execute 执行命令行
func Execute() error {
	return rootCmd.Execute()
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
