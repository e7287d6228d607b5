// Package dayview 时间轴的选中天与地图视野联动。
package dayview

import (
	"strings"

	"travel-map/model"
)

// Fitter 能调整视野的地图
type Fitter interface {
	FitBounds(locations []model.Location) bool
}

// Selector 维护选中的天; 只在用户点击时切换, 没有自动播放
type Selector struct {
	catalog  *model.Catalog
	fitter   Fitter
	selected int
}

// New 创建选择器, 默认选中第 1 天; fitter 为 nil 表示地图不可用
func New(catalog *model.Catalog, fitter Fitter) *Selector {
	return &Selector{catalog: catalog, fitter: fitter, selected: 1}
}

// Selected 当前选中的天
func (s *Selector) Selected() int {
	return s.selected
}

// Select 切换到第 day 天并把视野调整到当天的地点和酒店
// 当天没有地点、地点都找不到、或地图不可用时视野保持不变; 返回是否调整了视野
func (s *Selector) Select(day int) bool {
	s.selected = day

	if s.catalog == nil || s.fitter == nil {
		return false
	}
	locations := DayLocations(s.catalog, day)
	if len(locations) == 0 {
		return false
	}
	return s.fitter.FitBounds(locations)
}

// DayLocations 第 day 天要显示的地点: 当天的地点 (按顺序, 跳过目录里不存在的 ID) 加上当晚酒店
// 当天没有地点列表时返回 nil, 即使有酒店
func DayLocations(catalog *model.Catalog, day int) []model.Location {
	d, ok := catalog.Day(day)
	if !ok || len(d.Locations) == 0 {
		return nil
	}

	var out []model.Location
	for _, id := range d.Locations {
		if loc, ok := catalog.Location(id); ok {
			out = append(out, loc)
		}
	}
	if d.Hotel != "" {
		if hotel, ok := catalog.Hotel(d.Hotel); ok {
			out = append(out, hotel)
		}
	}
	return out
}

// DayIcon 时间轴上每天的图标
func DayIcon(d model.Day) string {
	switch {
	case strings.Contains(d.City, "台灣"):
		return "✈️"
	case strings.Contains(d.Title, "TAFE"), strings.Contains(d.Title, "昆士蘭大學"):
		return "🎓"
	case strings.Contains(d.Title, "華納兄弟"):
		return "🎢"
	case strings.Contains(d.Title, "探索"), strings.Contains(d.Title, "文化"):
		return "🎨"
	case strings.Contains(d.Title, "VR"), strings.Contains(d.Title, "STEM"):
		return "💻"
	case strings.Contains(d.Title, "Riverlife"):
		return "🚣"
	default:
		return "📍"
	}
}

// CityColor 时间轴天数徽章的渐变色
func CityColor(city string) string {
	switch {
	case strings.Contains(city, "布里斯本"):
		return "from-blue-500 to-blue-600"
	case strings.Contains(city, "黃金海岸"):
		return "from-yellow-500 to-orange-500"
	case strings.Contains(city, "台灣"):
		return "from-green-500 to-green-600"
	default:
		return "from-gray-500 to-gray-600"
	}
}

// Entry 时间轴上的一天
type Entry struct {
	model.Day
	Icon          string `json:"icon"`
	CityColor     string `json:"city_color"`
	HotelName     string `json:"hotel_name,omitempty"`
	LocationCount int    `json:"location_count"`
	Selected      bool   `json:"selected"`
}

// Timeline 生成时间轴
func Timeline(catalog *model.Catalog, selected int) []Entry {
	if catalog == nil {
		return nil
	}
	out := make([]Entry, 0, len(catalog.DailyItinerary))
	for _, d := range catalog.DailyItinerary {
		e := Entry{
			Day:           d,
			Icon:          DayIcon(d),
			CityColor:     CityColor(d.City),
			LocationCount: len(d.Locations),
			Selected:      d.Day == selected,
		}
		if d.Hotel != "" {
			e.HotelName = "住宿酒店"
			if h, ok := catalog.Hotel(d.Hotel); ok {
				e.HotelName = h.Name
			}
		}
		out = append(out, e)
	}
	return out
}
