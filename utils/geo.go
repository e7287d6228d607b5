package utils

import (
	"math"
	"travel-map/model"
)

// EarthRadius WGS84 长半轴 (米)
const EarthRadius = 6378137.0

// DegreesToRadians 角度转弧度
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// HaversineDistance 两点间球面距离 (米)
// 道路网络用它补全路段长度和吸附最近节点
func HaversineDistance(p1, p2 model.Point) float64 {
	dLat := DegreesToRadians(p2.Lat - p1.Lat)
	dLng := DegreesToRadians(p2.Lng - p1.Lng)
	sinLat, sinLng := math.Sin(dLat/2), math.Sin(dLng/2)

	h := sinLat*sinLat + math.Cos(DegreesToRadians(p1.Lat))*math.Cos(DegreesToRadians(p2.Lat))*sinLng*sinLng
	return 2 * EarthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bounds 经纬度矩形范围 (不考虑跨越 180 度经线的情况)
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundsOf 计算覆盖所有点的最小矩形; 没有点时 ok 为 false
func BoundsOf(points ...model.Point) (b Bounds, ok bool) {
	for i, p := range points {
		if i == 0 {
			b = Bounds{South: p.Lat, West: p.Lng, North: p.Lat, East: p.Lng}
			continue
		}
		b = b.Extend(p)
	}
	return b, len(points) > 0
}

// Extend 扩展范围使其包含 p
func (b Bounds) Extend(p model.Point) Bounds {
	b.South = math.Min(b.South, p.Lat)
	b.North = math.Max(b.North, p.Lat)
	b.West = math.Min(b.West, p.Lng)
	b.East = math.Max(b.East, p.Lng)
	return b
}

// Contains 判断点是否在范围内 (含边界)
func (b Bounds) Contains(p model.Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

// Center 范围中心点
func (b Bounds) Center() model.Point {
	return model.Point{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

const (
	tileSize = 256.0
	MaxZoom  = 17
)

// ZoomFor 计算在 width x height 像素的地图上完整显示范围所需的最大缩放级别
// 计算方式与 Web Mercator 瓦片地图一致
func ZoomFor(b Bounds, width, height int) int {
	latFraction := (latRad(b.North) - latRad(b.South)) / math.Pi
	lngFraction := (b.East - b.West) / 360

	latZoom := zoomFor(float64(height), latFraction)
	lngZoom := zoomFor(float64(width), lngFraction)

	zoom := int(math.Min(latZoom, lngZoom))
	if zoom > MaxZoom {
		return MaxZoom
	}
	if zoom < 0 {
		return 0
	}
	return zoom
}

func latRad(lat float64) float64 {
	sin := math.Sin(DegreesToRadians(lat))
	radX2 := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}

func zoomFor(mapPx, fraction float64) float64 {
	if fraction <= 0 {
		return MaxZoom
	}
	return math.Floor(math.Log2(mapPx / tileSize / fraction))
}
