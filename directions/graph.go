package directions

import (
	"context"
	"fmt"
	"strings"
	"time"
	"travel-map/algo"
	"travel-map/model"
)

// GraphService 基于本地道路网络的路线服务
type GraphService struct {
	Graph *algo.Graph
}

// NewGraphService 创建本地路线服务
func NewGraphService(g *algo.Graph) *GraphService {
	return &GraphService{Graph: g}
}

// Route 将起终点吸附到最近的路网节点, 再按驾车模式求最短时间路径
func (s *GraphService) Route(ctx context.Context, req Request) (*Route, error) {
	if err := checkMode(req.Mode); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Graph == nil || len(s.Graph.Nodes) == 0 {
		return nil, fmt.Errorf("%w: 道路网络未加载", ErrNoRoute)
	}

	start, err := s.resolve(req.Origin)
	if err != nil {
		return nil, err
	}
	end, err := s.resolve(req.Destination)
	if err != nil {
		return nil, err
	}

	result := s.Graph.Dijkstra(start.ID, end.ID, model.ModeCar)
	if !result.Found {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoRoute, start.Name, end.Name)
	}

	path := make([]model.Point, 0, len(result.Path))
	var names []string
	for _, id := range result.Path {
		node := s.Graph.Nodes[id]
		path = append(path, node.Point())
		names = append(names, node.Name)
	}

	return &Route{
		Summary:        strings.Join(names, " → "),
		Path:           path,
		DistanceMeters: result.Distance,
		Duration:       time.Duration(result.EstimatedTime * float64(time.Second)),
		Provider:       "graph",
	}, nil
}

// resolve 有坐标时取最近节点, 只有地址时按名称匹配
// 地址如 "Surfers Paradise, QLD" 比节点名长, 所以也接受名称出现在地址里的节点, 取最长的名称
func (s *GraphService) resolve(w model.Waypoint) (*model.Node, error) {
	if p, ok := w.Point(); ok {
		if node := s.Graph.FindNearestNode(p); node != nil {
			return node, nil
		}
	}
	if w.Address != "" {
		if matches := s.Graph.SearchNodes(w.Address); len(matches) > 0 {
			return s.Graph.Nodes[matches[0].ID], nil
		}
		address := strings.ToLower(w.Address)
		var best *model.Node
		for _, n := range s.Graph.NodeList {
			name := strings.ToLower(n.Name)
			if name != "" && strings.Contains(address, name) && (best == nil || len(n.Name) > len(best.Name)) {
				best = s.Graph.Nodes[n.ID]
			}
		}
		if best != nil {
			return best, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolved, w)
}
