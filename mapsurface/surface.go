// Package mapsurface 独占一个地图组件和一个路线覆盖层, 其余模块只能通过 Surface 的方法修改地图。
package mapsurface

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"travel-map/directions"
	"travel-map/model"
	"travel-map/utils"
)

// ErrMarkerNotFound 点击了不存在的标记
var ErrMarkerNotFound = errors.New("标记不存在")

// InitializationError 地图组件无法构造
type InitializationError struct {
	Container string
	Err       error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("地图初始化失败 (%s): %v", e.Container, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

type attachedMarker struct {
	marker Marker
	handle MarkerHandle
}

// Surface 地图表面
type Surface struct {
	mu         sync.Mutex
	widget     Widget
	markers    []attachedMarker
	directions directions.Service

	routeVisible bool
	overlay      *directions.Route
	generation   uint64
	onRouteError func(error)
}

// Snapshot 浏览器端渲染所需的地图状态
type Snapshot struct {
	Markers      []Marker          `json:"markers"`
	Viewport     Viewport          `json:"viewport"`
	Route        *directions.Route `json:"route,omitempty"`
	RouteVisible bool              `json:"route_visible"`
	Generation   uint64            `json:"generation"`
}

// Initialize 通过 provider 构造地图组件
func Initialize(ctx context.Context, p Provider, container string, svc directions.Service) (*Surface, error) {
	w, err := p.Load(ctx, container)
	if err != nil {
		return nil, &InitializationError{Container: container, Err: err}
	}
	return &Surface{widget: w, directions: svc}, nil
}

// OnRouteError 设置路线请求失败时的回调
func (s *Surface) OnRouteError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRouteError = fn
}

// SetMarkers 用新的标记替换地图上全部标记, 旧标记先全部卸下
func (s *Surface) SetMarkers(markers []Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.markers {
		m.handle.Detach()
	}
	s.markers = s.markers[:0]

	for _, m := range markers {
		s.markers = append(s.markers, attachedMarker{
			marker: m,
			handle: s.widget.AttachMarker(m),
		})
	}
}

// FitBounds 调整视野以包含所有地点; 没有地点时不做任何改变
// 返回是否调整了视野
func (s *Surface) FitBounds(locations []model.Location) bool {
	points := make([]model.Point, 0, len(locations))
	for _, loc := range locations {
		points = append(points, loc.Coordinates)
	}
	b, ok := utils.BoundsOf(points...)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.widget.FitBounds(b)
	return true
}

// SetRouteVisible 打开时发起一次驾车路线请求, 结果到达后绘制; 关闭时清除覆盖层
//
// 每次调用都会使代次加一, 只有代次仍为最新且仍处于显示状态时, 迟到的结果才会被绘制。
// 请求失败时覆盖层保持原状, 错误交给 OnRouteError 回调。
// 返回的 channel 在本次调用的异步部分结束后关闭。
func (s *Surface) SetRouteVisible(ctx context.Context, visible bool, origin, destination model.Waypoint) <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.routeVisible = visible
	if !visible {
		s.overlay = nil
		s.widget.SetDirections(nil)
		s.mu.Unlock()
		close(done)
		return done
	}
	svc := s.directions
	s.mu.Unlock()

	if svc == nil {
		s.reportRouteError(gen, errors.New("路线服务未配置"))
		close(done)
		return done
	}

	// 请求不随调用方取消
	reqCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		route, err := svc.Route(reqCtx, directions.Request{
			Origin:      origin,
			Destination: destination,
			Mode:        directions.Driving,
		})
		if err != nil {
			s.reportRouteError(gen, err)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation || !s.routeVisible {
			return
		}
		s.overlay = route
		s.widget.SetDirections(route)
	}()
	return done
}

func (s *Surface) reportRouteError(gen uint64, err error) {
	s.mu.Lock()
	fn := s.onRouteError
	current := gen == s.generation
	s.mu.Unlock()
	if fn != nil && current {
		fn(err)
	}
}

// ClickMarker 触发标记的点击回调
func (s *Surface) ClickMarker(id string) error {
	s.mu.Lock()
	var onClick func()
	found := false
	for _, m := range s.markers {
		if m.marker.ID == id {
			onClick = m.marker.OnClick
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrMarkerNotFound, id)
	}
	// 回调会修改会话状态, 不能在持锁时调用
	if onClick != nil {
		onClick()
	}
	return nil
}

// Viewport 当前视野
func (s *Surface) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widget.Viewport()
}

// Snapshot 返回当前地图状态
func (s *Surface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	markers := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		markers = append(markers, m.marker)
	}
	return Snapshot{
		Markers:      markers,
		Viewport:     s.widget.Viewport(),
		Route:        s.overlay,
		RouteVisible: s.routeVisible,
		Generation:   s.generation,
	}
}
