package model

import (
	"encoding/json"
	"fmt"
)

// Waypoint 路线的起点或终点
// JSON 中既可以是地址字符串, 也可以是 {"address": "...", "lat": .., "lng": ..} 对象
type Waypoint struct {
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// UnmarshalJSON 同时接受字符串和对象两种写法
func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var address string
	if err := json.Unmarshal(data, &address); err == nil {
		*w = Waypoint{Address: address}
		return nil
	}
	type plain Waypoint
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("无效的路线地点: %w", err)
	}
	*w = Waypoint(p)
	return nil
}

// Point 返回坐标; 没有坐标时 ok 为 false
func (w Waypoint) Point() (p Point, ok bool) {
	p = Point{Lat: w.Lat, Lng: w.Lng}
	return p, !p.IsZero()
}

// IsZero 判断起终点是否未设置
func (w Waypoint) IsZero() bool {
	return w.Address == "" && w.Lat == 0 && w.Lng == 0
}

func (w Waypoint) String() string {
	if w.Address != "" {
		return w.Address
	}
	return Point{Lat: w.Lat, Lng: w.Lng}.String()
}

// RouteInfo 一条预设路线
type RouteInfo struct {
	Origin      Waypoint `json:"origin"`
	Destination Waypoint `json:"destination"`
	Distance    string   `json:"distance,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

// TravelTips 交通注意事项
type TravelTips struct {
	DrivingRules    []string `json:"driving_rules"`
	ParkingNotes    []string `json:"parking_notes"`
	PublicTransport []string `json:"public_transport"`
}

// EmergencyContacts 紧急联络方式
type EmergencyContacts struct {
	Emergency     string `json:"emergency"`
	Consulate     string `json:"consulate"`
	TourLeader    string `json:"tour_leader"`
	TaiwanContact string `json:"taiwan_contact"`
}

// 预设路线名称
const (
	RouteBrisbaneToGoldCoast  = "route_brisbane_to_gold_coast"
	RouteBrisbaneToMovieWorld = "brisbane_to_movie_world"
)

// RouteDocument 路线与参考资料 (travel_routes.json), 只读
type RouteDocument struct {
	BrisbaneToGoldCoast  *RouteInfo        `json:"route_brisbane_to_gold_coast"`
	BrisbaneToMovieWorld *RouteInfo        `json:"brisbane_to_movie_world"`
	TravelTips           TravelTips        `json:"travel_tips"`
	EmergencyContacts    EmergencyContacts `json:"emergency_contacts"`
}

// Route 根据名称取预设路线
func (d *RouteDocument) Route(name string) (RouteInfo, bool) {
	var r *RouteInfo
	switch name {
	case RouteBrisbaneToGoldCoast:
		r = d.BrisbaneToGoldCoast
	case RouteBrisbaneToMovieWorld:
		r = d.BrisbaneToMovieWorld
	}
	if r == nil {
		return RouteInfo{}, false
	}
	return *r, true
}

// RouteNames 返回文档中存在的路线名称
func (d *RouteDocument) RouteNames() []string {
	var names []string
	if d.BrisbaneToGoldCoast != nil {
		names = append(names, RouteBrisbaneToGoldCoast)
	}
	if d.BrisbaneToMovieWorld != nil {
		names = append(names, RouteBrisbaneToMovieWorld)
	}
	return names
}
