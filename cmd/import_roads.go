package cmd

import (
	"fmt"
	"travel-map/db"

	"github.com/spf13/cobra"
)

var (
	importFile    string
	importReplace bool
)

var importRoadsCmd = &cobra.Command{
	Use:   "import-roads",
	Short: "把道路网络 JSON 导入 PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("file") {
			importFile = cfg.Directions.RoadNetwork
		}

		gdb, err := db.Open(cfg.DB())
		if err != nil {
			return err
		}

		nodes, edges, err := db.ImportRoadNetwork(gdb, importFile, importReplace)
		if err != nil {
			return fmt.Errorf("导入道路网络失败: %w", err)
		}
		fmt.Printf("导入完成: %d 个节点, %d 条路段\n", nodes, edges)
		return nil
	},
}

func init() {
	importRoadsCmd.Flags().StringVar(&importFile, "file", "data/road_network.json", "道路网络 JSON 文件")
	importRoadsCmd.Flags().BoolVar(&importReplace, "replace", false, "导入前清空已有数据")
	rootCmd.AddCommand(importRoadsCmd)
}
