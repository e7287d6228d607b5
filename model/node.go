package model

import "fmt"

// Point 代表一个经纬度点 (WGS84)
type Point struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`   // 纬度, 0 是合法值 (赤道)
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"` // 经度, 0 是合法值 (本初子午线)
}

// String 返回 "lat,lng" 形式，可直接作为路线请求的地点参数
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// IsZero 判断是否为未设置的坐标
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Node 道路网络中的一个点 (路口、高速出口、景点入口)
type Node struct {
	ID   string  `json:"id" gorm:"primaryKey"`
	Name string  `json:"name" gorm:"index"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type" gorm:"index"` // 如: "city", "junction", "attraction"
}

// Point 返回节点坐标
func (n *Node) Point() Point {
	return Point{Lat: n.Lat, Lng: n.Lng}
}
