package cmd

import (
	"context"
	"fmt"
	"time"
	"travel-map/directions"

	"github.com/spf13/cobra"
)

var routeTimeout time.Duration

var routeCmd = &cobra.Command{
	Use:   "route [name]",
	Short: "计算一条预设的驾车路线",
	Long:  "name 为 route_brisbane_to_gold_coast 或 brisbane_to_movie_world, 默认使用配置中的路线",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.Directions.Route
		if len(args) == 1 {
			name = args[0]
		}

		ctx, cancel := context.WithTimeout(context.Background(), routeTimeout)
		defer cancel()

		st := loadStore(ctx)
		doc, err := st.Routes()
		if err != nil {
			return err
		}
		info, ok := doc.Route(name)
		if !ok {
			return fmt.Errorf("路线资料中没有 %s (可用: %v)", name, doc.RouteNames())
		}

		var svc directions.Service
		if cfg.UseGoogle() {
			svc, err = directionsService(nil)
		} else {
			graph, gerr := loadGraph()
			if gerr != nil {
				return fmt.Errorf("加载道路网络失败: %w", gerr)
			}
			svc, err = directionsService(graph)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s → %s\n", info.Origin, info.Destination)
		if info.Distance != "" || info.Duration != "" {
			fmt.Printf("参考: %s, %s\n", info.Distance, info.Duration)
		}
		for _, note := range info.Notes {
			fmt.Printf("  • %s\n", note)
		}

		start := time.Now()
		r, err := svc.Route(ctx, directions.Request{
			Origin:      info.Origin,
			Destination: info.Destination,
			Mode:        directions.Driving,
		})
		if err != nil {
			return fmt.Errorf("路线请求失败: %w", err)
		}
		logVerbose("路线请求耗时 %v", time.Since(start))

		fmt.Printf("\n路线 (%s): %s\n", r.Provider, r.Summary)
		fmt.Printf("距离: %.1f 公里\n", r.DistanceMeters/1000)
		fmt.Printf("预计时间: %.0f 分钟\n", r.Duration.Minutes())
		fmt.Printf("折线点数: %d\n", len(r.Path))
		if verbose {
			for _, p := range r.Path {
				fmt.Printf("  %s\n", p)
			}
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().DurationVar(&routeTimeout, "timeout", 30*time.Second, "路线请求超时")
	rootCmd.AddCommand(routeCmd)
}
