package model

import "github.com/lib/pq"

// Edge 道路网络中两点之间的一条路段
type Edge struct {
	ID    uint           `json:"-" gorm:"primaryKey"`
	From  string         `json:"from" gorm:"index"`
	To    string         `json:"to" gorm:"index"`
	Dist  float64        `json:"dist"`                      // 距离 (米), 为 0 时加载后自动计算
	Modes pq.StringArray `json:"modes" gorm:"type:text[]"` // 原始模式列表: ["car", "walk"]
	Desc  string         `json:"desc,omitempty"`           // 描述, 如 "M1 太平洋高速"

	// --- 加载数据后算出来的, 不入库 ---
	ModeMask int `json:"-" gorm:"-"`
}

// RoadNetwork 用于解析整个道路网络 JSON 文件
type RoadNetwork struct {
	Meta  map[string]interface{} `json:"meta"`
	Nodes []Node                 `json:"nodes"`
	Edges []Edge                 `json:"edges"`
}

// 通行模式的二进制位
const (
	ModeNone = 0
	ModeWalk = 1 << 0
	ModeCar  = 1 << 1
)

// 双向通行的模式, 加载时为其自动补反向边
const BidirectionalMask = ModeWalk | ModeCar

// 平均速度 (米/秒)
const (
	SpeedWalk = 1.4  // 步行: 约 5 km/h
	SpeedCar  = 22.2 // 驾车: 约 80 km/h (城际高速与市区道路的平均)
)

// ParseModes 将字符串数组转换为位掩码
// 例如: ["walk", "car"] -> 1 | 2 = 3
func ParseModes(modes []string) int {
	mask := 0
	for _, m := range modes {
		mask |= GetModeMask(m)
	}
	return mask
}

// GetModeMask 获取单个交通方式的位掩码
func GetModeMask(mode string) int {
	switch mode {
	case "walk":
		return ModeWalk
	case "car", "driving":
		return ModeCar
	default:
		return ModeNone
	}
}

// GetModeSpeed 获取位掩码对应交通方式的速度 (米/秒)
// 多种方式同时允许时取最快的
func GetModeSpeed(mask int) float64 {
	if mask&ModeCar != 0 {
		return SpeedCar
	}
	return SpeedWalk
}
