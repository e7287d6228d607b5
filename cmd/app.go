package cmd

import (
	"context"
	"fmt"
	"log"
	"travel-map/algo"
	"travel-map/db"
	"travel-map/directions"
	"travel-map/store"
)

// source 按配置选择文档来源
func source() store.Source {
	if cfg.Data.BaseURL != "" {
		logVerbose("从 %s 读取行程文档", cfg.Data.BaseURL)
		return store.HTTPSource{BaseURL: cfg.Data.BaseURL}
	}
	logVerbose("从目录 %s 读取行程文档", cfg.Data.Dir)
	return store.DirSource{Dir: cfg.Data.Dir}
}

// loadStore 加载两份文档并报告悬空引用
func loadStore(ctx context.Context) *store.Store {
	st := store.Load(ctx, source())
	if catalog, err := st.Catalog(); err == nil {
		for _, ref := range store.CheckReferences(catalog) {
			log.Printf("警告: %s", ref)
		}
	}
	return st
}

// loadGraph 加载道路网络: 启用数据库时从 PostgreSQL 读取 (空库先导入 JSON), 否则直接读 JSON
func loadGraph() (*algo.Graph, error) {
	if !cfg.Database.Enabled {
		return algo.LoadFromJSON(cfg.Directions.RoadNetwork)
	}

	gdb, err := db.Open(cfg.DB())
	if err != nil {
		return nil, err
	}
	if err := db.ImportIfEmpty(gdb, cfg.Directions.RoadNetwork); err != nil {
		return nil, err
	}
	return algo.LoadFromDB(gdb)
}

// directionsService 按配置选择路线服务; graph 为 nil 且不用 Google 时返回 nil
func directionsService(graph *algo.Graph) (directions.Service, error) {
	if cfg.UseGoogle() {
		svc, err := directions.NewGoogleService(cfg.Map.APIKey, cfg.Directions.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("初始化 Google 路线服务失败: %w", err)
		}
		logVerbose("路线服务: google")
		return svc, nil
	}
	if graph == nil {
		return nil, nil
	}
	logVerbose("路线服务: 本地道路网络")
	return directions.NewGraphService(graph), nil
}
