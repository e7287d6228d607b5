package directions

import (
	"context"
	"fmt"
	"strings"
	"time"
	"travel-map/model"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// GoogleService 基于 Google Directions API 的路线服务
type GoogleService struct {
	client  *maps.Client
	limiter *rate.Limiter
}

// NewGoogleService 创建 Google 路线服务; rps 为每秒允许的请求数
func NewGoogleService(apiKey string, rps float64, opts ...maps.ClientOption) (*GoogleService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("缺少地图 API 凭证")
	}
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("创建 Google 地图客户端失败: %w", err)
	}
	if rps <= 0 {
		rps = 1
	}
	return &GoogleService{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Route 请求一条驾车路线, 取第一条候选路线
func (s *GoogleService) Route(ctx context.Context, req Request) (*Route, error) {
	if err := checkMode(req.Mode); err != nil {
		return nil, err
	}
	if req.Origin.IsZero() || req.Destination.IsZero() {
		return nil, fmt.Errorf("%w: 起点或终点为空", ErrUnresolved)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	routes, _, err := s.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      req.Origin.String(),
		Destination: req.Destination.String(),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		// ZERO_RESULTS 不算错误, 由下面的空结果处理; NOT_FOUND 表示起终点无法地理编码
		if strings.Contains(err.Error(), "NOT_FOUND") {
			return nil, fmt.Errorf("%w: %v", ErrNoRoute, err)
		}
		return nil, fmt.Errorf("请求 Google 路线失败: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	r := routes[0]
	latlngs, err := r.OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("解析路线折线失败: %w", err)
	}
	path := make([]model.Point, 0, len(latlngs))
	for _, ll := range latlngs {
		path = append(path, model.Point{Lat: ll.Lat, Lng: ll.Lng})
	}

	var meters int
	var duration time.Duration
	for _, leg := range r.Legs {
		meters += leg.Distance.Meters
		duration += leg.Duration
	}

	return &Route{
		Summary:        r.Summary,
		Path:           path,
		DistanceMeters: float64(meters),
		Duration:       duration,
		Provider:       "google",
	}, nil
}
