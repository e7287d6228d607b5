package mapsurface

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"travel-map/directions"
	"travel-map/model"
	"travel-map/utils"
)

// Marker 地图上的一个标记, 绑定一个地点
type Marker struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Position model.Point    `json:"position"`
	Category model.Category `json:"category"`
	Icon     string         `json:"icon"`
	Color    string         `json:"color"`

	OnClick func() `json:"-"`
}

// Viewport 当前可视范围
type Viewport struct {
	Center model.Point   `json:"center"`
	Zoom   int           `json:"zoom"`
	Bounds *utils.Bounds `json:"bounds,omitempty"`
}

// PolylineStyle 路线覆盖层样式
type PolylineStyle struct {
	StrokeColor   string  `json:"stroke_color"`
	StrokeWeight  int     `json:"stroke_weight"`
	StrokeOpacity float64 `json:"stroke_opacity"`
}

// MarkerHandle 已挂到地图上的标记; Detach 后不再显示
type MarkerHandle interface {
	Detach()
}

// Widget 地图组件, 由地图服务商提供
type Widget interface {
	AttachMarker(m Marker) MarkerHandle
	FitBounds(b utils.Bounds)
	Viewport() Viewport
	// SetDirections 设置路线覆盖层, nil 表示清除
	SetDirections(r *directions.Route)
}

// Provider 构造地图组件; 加载失败 (网络、凭证) 时返回错误
type Provider interface {
	Load(ctx context.Context, container string) (Widget, error)
}

// Options 地图初始参数
type Options struct {
	Center  model.Point
	Zoom    int
	Width   int // 像素, 用于 fitBounds 计算缩放级别
	Height  int
	Overlay PolylineStyle
}

// DefaultOptions 以布里斯本与黄金海岸之间为中心
func DefaultOptions() Options {
	return Options{
		Center: model.Point{Lat: -27.8, Lng: 153.2},
		Zoom:   9,
		Width:  1024,
		Height: 768,
		Overlay: PolylineStyle{
			StrokeColor:   "#FF6B6B",
			StrokeWeight:  4,
			StrokeOpacity: 0.8,
		},
	}
}

// HeadlessProvider 在服务端维护地图状态, 由浏览器端按快照渲染
// 浏览器端加载地图脚本需要 API 凭证, 缺少凭证时视为加载失败
type HeadlessProvider struct {
	APIKey  string
	Options Options
}

// Load 实现 Provider
func (p *HeadlessProvider) Load(ctx context.Context, container string) (Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.APIKey == "" {
		return nil, fmt.Errorf("缺少地图 API 凭证")
	}
	opts := p.Options
	if opts.Width == 0 || opts.Height == 0 {
		opts = DefaultOptions()
	}
	return NewMemoryWidget(opts), nil
}

// MemoryWidget 内存中的地图组件
type MemoryWidget struct {
	mu       sync.Mutex
	opts     Options
	markers  map[int]Marker
	nextID   int
	viewport Viewport
	overlay  *directions.Route
}

// NewMemoryWidget 创建内存地图组件
func NewMemoryWidget(opts Options) *MemoryWidget {
	return &MemoryWidget{
		opts:     opts,
		markers:  make(map[int]Marker),
		viewport: Viewport{Center: opts.Center, Zoom: opts.Zoom},
	}
}

type memoryMarker struct {
	w  *MemoryWidget
	id int
}

func (m *memoryMarker) Detach() {
	m.w.mu.Lock()
	defer m.w.mu.Unlock()
	delete(m.w.markers, m.id)
}

// AttachMarker 实现 Widget
func (w *MemoryWidget) AttachMarker(m Marker) MarkerHandle {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	w.markers[w.nextID] = m
	return &memoryMarker{w: w, id: w.nextID}
}

// FitBounds 实现 Widget
func (w *MemoryWidget) FitBounds(b utils.Bounds) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.viewport = Viewport{
		Center: b.Center(),
		Zoom:   utils.ZoomFor(b, w.opts.Width, w.opts.Height),
		Bounds: &b,
	}
}

// Viewport 实现 Widget
func (w *MemoryWidget) Viewport() Viewport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewport
}

// SetDirections 实现 Widget
func (w *MemoryWidget) SetDirections(r *directions.Route) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.overlay = r
}

// Markers 按挂载顺序返回当前显示的标记
func (w *MemoryWidget) Markers() []Marker {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]int, 0, len(w.markers))
	for id := range w.markers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Marker, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.markers[id])
	}
	return out
}

// Overlay 当前的路线覆盖层
func (w *MemoryWidget) Overlay() *directions.Route {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.overlay
}

// Style 路线覆盖层样式
func (w *MemoryWidget) Style() PolylineStyle {
	return w.opts.Overlay
}
