package handler

import (
	"net/http"
	"travel-map/model"

	"github.com/gin-gonic/gin"
)

// PathRequest 路径规划请求 (只支持驾车)
// 起终点可以给节点 ID, 也可以给坐标, 坐标会吸附到最近的节点
type PathRequest struct {
	StartID  string  `json:"start_id"`            // 起点节点 ID
	EndID    string  `json:"end_id"`              // 终点节点 ID
	StartLat float64 `json:"start_lat,omitempty"` // 起点纬度 (可选)
	StartLng float64 `json:"start_lng,omitempty"` // 起点经度 (可选)
	EndLat   float64 `json:"end_lat,omitempty"`   // 终点纬度 (可选)
	EndLng   float64 `json:"end_lng,omitempty"`   // 终点经度 (可选)
	Mode     string  `json:"mode,omitempty"`      // 只接受 "driving" 或 "car", 默认 driving
}

// PathResponse 路径规划响应
type PathResponse struct {
	Found         bool          `json:"found"`
	Path          []PathNode    `json:"path,omitempty"`
	Segments      []PathSegment `json:"segments,omitempty"`       // 路径段详情
	Distance      float64       `json:"distance,omitempty"`       // 总距离 (米)
	EstimatedTime float64       `json:"estimated_time,omitempty"` // 预计时间 (秒)
	Message       string        `json:"message,omitempty"`
}

// PathNode 路径节点信息
type PathNode struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

// PathSegment 路径段信息
type PathSegment struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"` // 预计时间 (秒)
	Desc     string  `json:"desc,omitempty"`
}

func toPathNode(node *model.Node) PathNode {
	return PathNode{
		ID:   node.ID,
		Name: node.Name,
		Lat:  node.Lat,
		Lng:  node.Lng,
		Type: node.Type,
	}
}

// FindPath 路径规划接口
func (h *Handler) FindPath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	if h.Graph == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "道路网络未加载"})
		return
	}

	if req.Mode != "" && model.GetModeMask(req.Mode) != model.ModeCar {
		c.JSON(http.StatusBadRequest, gin.H{"error": "只支持驾车路线: " + req.Mode})
		return
	}

	// 如果提供了坐标，找到最近的节点
	startID := req.StartID
	endID := req.EndID

	if req.StartLat != 0 && req.StartLng != 0 {
		if nearest := h.Graph.FindNearestNode(model.Point{Lat: req.StartLat, Lng: req.StartLng}); nearest != nil {
			startID = nearest.ID
		}
	}

	if req.EndLat != 0 && req.EndLng != 0 {
		if nearest := h.Graph.FindNearestNode(model.Point{Lat: req.EndLat, Lng: req.EndLng}); nearest != nil {
			endID = nearest.ID
		}
	}

	// 验证起点和终点
	if startID == "" || endID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "起点或终点未指定"})
		return
	}

	if h.Graph.Nodes[startID] == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "起点不存在: " + startID})
		return
	}

	if h.Graph.Nodes[endID] == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "终点不存在: " + endID})
		return
	}

	result := h.Graph.Dijkstra(startID, endID, model.ModeCar)

	if !result.Found {
		c.JSON(http.StatusOK, PathResponse{
			Found:   false,
			Message: "未找到符合条件的路径",
		})
		return
	}

	pathNodes := make([]PathNode, 0, len(result.Path))
	for _, nodeID := range result.Path {
		if node := h.Graph.Nodes[nodeID]; node != nil {
			pathNodes = append(pathNodes, toPathNode(node))
		}
	}

	// 构建路径段信息（包含节点名称）
	segments := make([]PathSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		fromName, toName := seg.FromID, seg.ToID
		if n := h.Graph.Nodes[seg.FromID]; n != nil {
			fromName = n.Name
		}
		if n := h.Graph.Nodes[seg.ToID]; n != nil {
			toName = n.Name
		}
		segments = append(segments, PathSegment{
			FromID:   seg.FromID,
			FromName: fromName,
			ToID:     seg.ToID,
			ToName:   toName,
			Distance: seg.Distance,
			Time:     seg.Time,
			Desc:     seg.Desc,
		})
	}

	c.JSON(http.StatusOK, PathResponse{
		Found:         true,
		Path:          pathNodes,
		Segments:      segments,
		Distance:      result.Distance,
		EstimatedTime: result.EstimatedTime,
		Message:       "路径规划成功",
	})
}

// GetNodes 获取所有节点信息
func (h *Handler) GetNodes(c *gin.Context) {
	if h.Graph == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "道路网络未加载"})
		return
	}

	nodes := make([]PathNode, 0, len(h.Graph.NodeList))
	for i := range h.Graph.NodeList {
		nodes = append(nodes, toPathNode(&h.Graph.NodeList[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(nodes),
		"nodes": nodes,
	})
}

// GetNodeByID 根据 ID 获取节点信息
func (h *Handler) GetNodeByID(c *gin.Context) {
	if h.Graph == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "道路网络未加载"})
		return
	}

	node := h.Graph.Nodes[c.Param("id")]
	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "节点不存在"})
		return
	}

	c.JSON(http.StatusOK, toPathNode(node))
}

// SearchNodes 搜索节点 (根据名称模糊匹配)
func (h *Handler) SearchNodes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少搜索关键词"})
		return
	}

	if h.Graph == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "道路网络未加载"})
		return
	}

	matches := h.Graph.SearchNodes(query)
	results := make([]PathNode, 0, len(matches))
	for i := range matches {
		results = append(results, toPathNode(&matches[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}
