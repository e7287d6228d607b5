// Package directions 计算路线覆盖层所需的驾车路线。
//
// 配置了地图 API 凭证时使用 Google Directions, 否则使用本地道路网络 (algo.Graph)。
package directions

import (
	"context"
	"errors"
	"time"
	"travel-map/model"
)

// TravelMode 出行方式; 目前只支持驾车
type TravelMode string

const Driving TravelMode = "driving"

var (
	// ErrNoRoute 起终点之间没有可行路线
	ErrNoRoute = errors.New("未找到路线")
	// ErrUnresolved 起点或终点无法定位
	ErrUnresolved = errors.New("无法定位地点")
	// ErrUnsupportedMode 不支持的出行方式
	ErrUnsupportedMode = errors.New("不支持的出行方式")
)

// Request 一次路线请求
type Request struct {
	Origin      model.Waypoint
	Destination model.Waypoint
	Mode        TravelMode
}

// Route 计算结果, 即覆盖层要绘制的内容
type Route struct {
	Summary        string        `json:"summary"`
	Path           []model.Point `json:"path"`
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
	Provider       string        `json:"provider"`
}

// Service 路线服务
type Service interface {
	Route(ctx context.Context, req Request) (*Route, error)
}

func checkMode(mode TravelMode) error {
	if mode != "" && mode != Driving {
		return ErrUnsupportedMode
	}
	return nil
}
