package algo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"travel-map/db"
	"travel-map/model"
	"travel-map/utils"

	"gorm.io/gorm"
)

// Graph 道路网络图，用于本地驾车路线规划
type Graph struct {
	Nodes    map[string]*model.Node   // 节点字典 (ID -> Node)
	AdjList  map[string][]*model.Edge // 邻接表 (ID -> 边列表)
	NodeList []model.Node             // 节点列表 (用于遍历)
}

// NewGraph 创建一个空的图
func NewGraph() *Graph {
	return &Graph{
		Nodes:   make(map[string]*model.Node),
		AdjList: make(map[string][]*model.Edge),
	}
}

// LoadFromJSON 从 JSON 文件加载道路网络
func LoadFromJSON(filepath string) (*Graph, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取道路网络文件失败: %w", err)
	}

	var data model.RoadNetwork
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("解析道路网络 JSON 失败: %w", err)
	}

	return Build(data.Nodes, data.Edges), nil
}

// LoadFromDB 从数据库加载道路网络
func LoadFromDB(gdb *gorm.DB) (*Graph, error) {
	nodes, edges, err := db.LoadRoadNetwork(gdb)
	if err != nil {
		return nil, err
	}
	return Build(nodes, edges), nil
}

// Build 由节点和边构建图: 计算 ModeMask, 补全缺失的距离, 为双向模式补反向边
func Build(nodes []model.Node, edges []model.Edge) *Graph {
	g := NewGraph()

	for i := range nodes {
		node := &nodes[i]
		g.Nodes[node.ID] = node
		g.NodeList = append(g.NodeList, *node)
	}

	for i := range edges {
		edge := &edges[i]
		edge.ModeMask = model.ParseModes(edge.Modes)

		// 如果距离为 0，则按球面距离自动计算
		if edge.Dist == 0 {
			from := g.Nodes[edge.From]
			to := g.Nodes[edge.To]
			if from != nil && to != nil {
				edge.Dist = utils.HaversineDistance(from.Point(), to.Point())
			}
		}

		g.AdjList[edge.From] = append(g.AdjList[edge.From], edge)

		if edge.ModeMask&model.BidirectionalMask == 0 {
			continue
		}
		// 检查是否已存在反向边（避免重复添加）
		reverseExists := false
		for _, existing := range g.AdjList[edge.To] {
			if existing.To == edge.From {
				reverseExists = true
				break
			}
		}
		if !reverseExists {
			g.AdjList[edge.To] = append(g.AdjList[edge.To], &model.Edge{
				From:     edge.To,
				To:       edge.From,
				Dist:     edge.Dist,
				Modes:    edge.Modes,
				ModeMask: edge.ModeMask & model.BidirectionalMask,
				Desc:     edge.Desc,
			})
		}
	}

	return g
}

// GetNeighbors 获取指定节点在特定交通方式下的邻居边
func (g *Graph) GetNeighbors(nodeID string, modeMask int) []*model.Edge {
	var validEdges []*model.Edge
	for _, edge := range g.AdjList[nodeID] {
		if edge.ModeMask&modeMask != 0 {
			validEdges = append(validEdges, edge)
		}
	}
	return validEdges
}

// FindNearestNode 找到离给定坐标最近的节点
func (g *Graph) FindNearestNode(p model.Point) *model.Node {
	var nearest *model.Node
	minDist := -1.0

	for i := range g.NodeList {
		node := g.Nodes[g.NodeList[i].ID]
		dist := utils.HaversineDistance(p, node.Point())
		if minDist < 0 || dist < minDist {
			minDist = dist
			nearest = node
		}
	}

	return nearest
}

// SearchNodes 按名称或 ID 模糊匹配节点 (不区分大小写)
func (g *Graph) SearchNodes(query string) []model.Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var results []model.Node
	for _, node := range g.NodeList {
		if strings.Contains(strings.ToLower(node.Name), q) || strings.Contains(strings.ToLower(node.ID), q) {
			results = append(results, node)
		}
	}
	return results
}
