// Package markers 由地点目录推导地图标记, 并按分类分配图标和颜色。
package markers

import (
	"travel-map/mapsurface"
	"travel-map/model"
)

// 表外分类使用的默认图标和颜色
const (
	DefaultIcon  = "📍"
	DefaultColor = "#6B7280"
)

// IconFor 分类对应的图标
func IconFor(c model.Category) string {
	switch c {
	case model.CategoryHotel:
		return "🏨"
	case model.CategoryAttraction:
		return "🎨"
	case model.CategoryEducation:
		return "🎓"
	case model.CategoryShopping:
		return "🛍️"
	case model.CategoryThemePark:
		return "🎢"
	case model.CategoryFood:
		return "🍽️"
	case model.CategoryActivity:
		return "🚣"
	default:
		return DefaultIcon
	}
}

// ColorFor 分类对应的标记底色
func ColorFor(c model.Category) string {
	switch c {
	case model.CategoryHotel:
		return "#4F46E5"
	case model.CategoryAttraction:
		return "#10B981"
	case model.CategoryEducation:
		return "#F59E0B"
	case model.CategoryShopping:
		return "#EF4444"
	case model.CategoryThemePark:
		return "#8B5CF6"
	case model.CategoryFood:
		return "#F97316"
	case model.CategoryActivity:
		return "#06B6D4"
	default:
		return DefaultColor
	}
}

// Derive 为目录中每个地点生成一个标记; onSelect 在标记被点击时收到该地点
func Derive(catalog *model.Catalog, onSelect func(model.Location)) []mapsurface.Marker {
	if catalog == nil {
		return nil
	}
	locations := catalog.Locations()
	out := make([]mapsurface.Marker, 0, len(locations))
	for _, loc := range locations {
		loc := loc
		m := mapsurface.Marker{
			ID:       loc.ID,
			Title:    loc.Name,
			Position: loc.Coordinates,
			Category: loc.Category,
			Icon:     IconFor(loc.Category),
			Color:    ColorFor(loc.Category),
		}
		if onSelect != nil {
			m.OnClick = func() { onSelect(loc) }
		}
		out = append(out, m)
	}
	return out
}

// Target 标记同步的目标地图
type Target interface {
	SetMarkers(markers []mapsurface.Marker)
	FitBounds(locations []model.Location) bool
}

// Synchronizer 目录变化时重建地图标记
type Synchronizer struct {
	OnSelect func(model.Location)

	last *model.Catalog
}

// Sync 目录引用与上次不同时重建标记, 并把视野调整到全部地点
// 返回是否进行了重建
func (s *Synchronizer) Sync(target Target, catalog *model.Catalog) bool {
	if target == nil || catalog == nil || catalog == s.last {
		return false
	}
	target.SetMarkers(Derive(catalog, s.OnSelect))
	target.FitBounds(catalog.Locations())
	s.last = catalog
	return true
}
