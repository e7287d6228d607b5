// Package session 一个浏览者的界面状态, 以及这些状态与地图、时间轴、面板之间的联动。
//
// 同一会话的事件按到达顺序串行处理。
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
	"travel-map/dayview"
	"travel-map/directions"
	"travel-map/mapsurface"
	"travel-map/markers"
	"travel-map/model"
	"travel-map/panels"
	"travel-map/store"
)

// DefaultContainer 地图挂载的容器名称
const DefaultContainer = "map"

// ErrNoMap 地图初始化失败或尚未初始化
var ErrNoMap = errors.New("地图不可用")

// SelectedLocation 选中的地点, 带分类标签
type SelectedLocation struct {
	Location model.Location `json:"location"`
	Category model.Category `json:"category"`
}

// Selection 界面选择状态, 不持久化
type Selection struct {
	Day          int               `json:"day"`
	Location     *SelectedLocation `json:"location"`
	RouteVisible bool              `json:"route_visible"`
	InfoOpen     bool              `json:"info_open"`
}

// Config 会话的地图相关配置
type Config struct {
	Provider   mapsurface.Provider
	Container  string
	Directions directions.Service
	// RouteName 切换路线时使用的预设路线
	RouteName string
}

// Session 一个浏览者
type Session struct {
	id  string
	cfg Config

	mu        sync.Mutex
	store     *store.Store
	surface   *mapsurface.Surface
	markers   markers.Synchronizer
	days      *dayview.Selector
	selection Selection
	lastSeen  time.Time
}

// New 创建会话; 目录加载成功后才初始化地图, 地图初始化失败时其余功能照常可用
func New(ctx context.Context, id string, st *store.Store, cfg Config) *Session {
	if cfg.Container == "" {
		cfg.Container = DefaultContainer
	}
	if cfg.RouteName == "" {
		cfg.RouteName = model.RouteBrisbaneToGoldCoast
	}

	s := &Session{
		id:    id,
		cfg:   cfg,
		store: st,
		selection: Selection{
			Day:          1,
			RouteVisible: true,
		},
		lastSeen: time.Now(),
	}
	s.markers.OnSelect = s.selectLocation

	catalog, err := st.Catalog()
	if err != nil {
		log.Printf("会话 %s: 行程目录不可用, 地图暂不初始化: %v", id, err)
		s.days = dayview.New(nil, nil)
		return s
	}

	if cfg.Provider != nil {
		surface, err := mapsurface.Initialize(ctx, cfg.Provider, cfg.Container, cfg.Directions)
		if err != nil {
			log.Printf("会话 %s: %v", id, err)
		} else {
			surface.OnRouteError(func(err error) {
				log.Printf("会话 %s: 路线请求失败: %v", id, err)
			})
			s.surface = surface
		}
	}

	if s.surface != nil {
		s.markers.Sync(s.surface, catalog)
		s.days = dayview.New(catalog, s.surface)
	} else {
		s.days = dayview.New(catalog, nil)
	}
	return s
}

// ID 会话 ID
func (s *Session) ID() string {
	return s.id
}

// LastSeen 最后一次处理事件的时间
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}

// HasMap 地图是否初始化成功
func (s *Session) HasMap() bool {
	return s.surface != nil
}

// Selection 当前界面状态的副本
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.selection
	if sel.Location != nil {
		loc := *sel.Location
		sel.Location = &loc
	}
	return sel
}

// Map 地图快照; 地图不可用时 ok 为 false
func (s *Session) Map() (snap mapsurface.Snapshot, ok bool) {
	if s.surface == nil {
		return mapsurface.Snapshot{}, false
	}
	return s.surface.Snapshot(), true
}

// SelectDay 选中某一天并调整视野, 返回视野是否改变
func (s *Session) SelectDay(day int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Day = day
	return s.days.Select(day)
}

// Timeline 时间轴, 标出当前选中的天
func (s *Session) Timeline() ([]dayview.Entry, error) {
	catalog, err := s.store.Catalog()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	day := s.selection.Day
	s.mu.Unlock()
	return dayview.Timeline(catalog, day), nil
}

// ClickMarker 点击地图标记, 选中对应地点
func (s *Session) ClickMarker(id string) error {
	if s.surface == nil {
		return ErrNoMap
	}
	// 点击回调会获取会话锁
	return s.surface.ClickMarker(id)
}

func (s *Session) selectLocation(loc model.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Location = &SelectedLocation{Location: loc, Category: loc.Category}
}

// CloseLocation 关闭地点详情
func (s *Session) CloseLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Location = nil
}

// ToggleRoute 切换路线显示
//
// 地图不可用时不做任何事。切换到显示且路线资料可用时发起驾车路线请求,
// 否则清除覆盖层。返回的 channel 在异步请求结束后关闭。
func (s *Session) ToggleRoute(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.surface == nil {
		done := make(chan struct{})
		close(done)
		return done
	}

	s.selection.RouteVisible = !s.selection.RouteVisible
	if s.selection.RouteVisible {
		if doc, err := s.store.Routes(); err == nil {
			if r, ok := doc.Route(s.cfg.RouteName); ok {
				return s.surface.SetRouteVisible(ctx, true, r.Origin, r.Destination)
			}
			log.Printf("会话 %s: 路线资料中没有 %s", s.id, s.cfg.RouteName)
		}
	}
	return s.surface.SetRouteVisible(ctx, false, model.Waypoint{}, model.Waypoint{})
}

// OpenInfo 打开实用资讯面板
func (s *Session) OpenInfo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.InfoOpen = true
}

// CloseInfo 关闭实用资讯面板
func (s *Session) CloseInfo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.InfoOpen = false
}

// LocationPanel 选中地点的详情; 没有选中地点时 ok 为 false
func (s *Session) LocationPanel() (panels.LocationDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.Location == nil {
		return panels.LocationDetail{}, false
	}
	return panels.Location(s.selection.Location.Location), true
}

// InfoPanel 实用资讯; 面板未打开或资料未加载时 ok 为 false
func (s *Session) InfoPanel() (panels.Info, bool) {
	s.mu.Lock()
	open := s.selection.InfoOpen
	s.mu.Unlock()
	if !open {
		return panels.Info{}, false
	}
	doc, err := s.store.Routes()
	if err != nil {
		return panels.Info{}, false
	}
	return panels.InfoFrom(doc)
}
