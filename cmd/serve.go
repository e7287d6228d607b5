package cmd

import (
	"context"
	"fmt"
	"log"
	"time"
	"travel-map/config"
	"travel-map/handler"
	"travel-map/mapsurface"
	"travel-map/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动互动地图 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		fmt.Println("=== 澳洲16天數位城市之旅 - 互动行程地图 ===")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 1. 并发加载两份行程文档, 失败的文档对应的界面保持加载状态
		st := loadStore(ctx)

		// 2. 加载道路网络, 失败时没有本地路线服务
		graph, err := loadGraph()
		if err != nil {
			log.Printf("加载道路网络失败: %v", err)
		} else {
			fmt.Printf("道路网络加载成功! 节点数: %d\n", len(graph.Nodes))
		}

		svc, err := directionsService(graph)
		if err != nil {
			return err
		}

		// 3. 会话管理
		ttl, err := cfg.SessionTTL()
		if err != nil {
			return err
		}
		if cfg.Session.Secret == config.Defaults().Session.Secret {
			log.Printf("警告: 正在使用默认的会话密钥, 请设置 SESSION_SECRET")
		}
		sessions := session.NewManager(st, session.Config{
			Provider:   &mapsurface.HeadlessProvider{APIKey: cfg.Map.APIKey},
			Container:  cfg.Map.Container,
			Directions: svc,
			RouteName:  cfg.Directions.Route,
		}, []byte(cfg.Session.Secret), ttl)
		sessions.MaxSessions = cfg.Session.MaxSessions
		go sessions.RunPruner(ctx, 10*time.Minute)

		var limiter *rate.Limiter
		if cfg.Session.CreateRate > 0 {
			limiter = rate.NewLimiter(rate.Limit(cfg.Session.CreateRate), max(cfg.Session.CreateBurst, 1))
		}

		// 4. 路由
		h := &handler.Handler{
			Store:    st,
			Sessions: sessions,
			Graph:    graph,
			DataDir:  dataDirForStatic(),

			SessionLimiter: limiter,
		}
		r := gin.Default()
		h.SetupRoutes(r)

		addr := fmt.Sprintf("%s:%d", serveHost, servePort)
		fmt.Printf("\n服务器启动中...\n")
		fmt.Printf("访问地址: http://%s\n", addr)
		fmt.Println("API 文档:")
		fmt.Println("  - GET    /api/itinerary           - 行程目录与图例")
		fmt.Println("  - GET    /api/days                - 时间轴")
		fmt.Println("  - GET    /api/locations/:id       - 地点详情")
		fmt.Println("  - GET    /api/info                - 实用资讯")
		fmt.Println("  - POST   /api/session             - 创建会话")
		fmt.Println("  - GET    /api/map                 - 地图快照 (会话)")
		fmt.Println("  - POST   /api/days/:day/select    - 选择天数 (会话)")
		fmt.Println("  - POST   /api/markers/:id/click   - 点击标记 (会话)")
		fmt.Println("  - POST   /api/route/toggle        - 切换路线 (会话)")
		fmt.Println("  - POST   /api/path/find           - 驾车路径规划")
		fmt.Println("\n按 Ctrl+C 退出")

		if err := r.Run(addr); err != nil {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	},
}

// dataDirForStatic 从本地目录读取文档时, 同时以 /data 提供原始 JSON
func dataDirForStatic() string {
	if cfg.Data.BaseURL != "" {
		return ""
	}
	return cfg.Data.Dir
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "监听地址")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "监听端口")
	rootCmd.AddCommand(serveCmd)
}
