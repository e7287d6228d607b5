// Package store 加载行程目录与路线参考文档。
//
// 两份文档在启动时并发加载一次, 互不影响: 一份失败不会阻止另一份可用。
// 加载后的内容只读, 读取方拿到的是同一个指针。
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"travel-map/model"

	"github.com/go-playground/validator/v10"
)

// 文档文件名
const (
	CatalogFile = "itinerary_locations.json"
	RoutesFile  = "travel_routes.json"
)

// ErrNotLoaded 文档尚未加载或加载失败
var ErrNotLoaded = errors.New("数据未加载")

// Source 文档来源
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource 从本地目录读取文档
type DirSource struct {
	Dir string
}

// Open 实现 Source
func (s DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.Dir, name))
}

// HTTPSource 从静态文件服务器读取文档, 例如 http://host/data
// Client 为空时使用 10 秒超时的默认客户端
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// Open 实现 Source
func (s HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	url := strings.TrimRight(s.BaseURL, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 %s 失败: HTTP %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// Store 已加载的文档
type Store struct {
	mu         sync.RWMutex
	catalog    *model.Catalog
	routes     *model.RouteDocument
	catalogErr error
	routesErr  error
}

// Load 并发加载两份文档; 失败只记录日志, 对应的读取方法返回 ErrNotLoaded
func Load(ctx context.Context, src Source) *Store {
	s := &Store{}
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		c, err := LoadCatalog(ctx, src)
		if err != nil {
			log.Printf("加载行程目录失败: %v", err)
		}
		s.mu.Lock()
		s.catalog, s.catalogErr = c, err
		s.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		r, err := LoadRoutes(ctx, src)
		if err != nil {
			log.Printf("加载路线资料失败: %v", err)
		}
		s.mu.Lock()
		s.routes, s.routesErr = r, err
		s.mu.Unlock()
	}()

	wg.Wait()
	return s
}

// New 用已解析的文档构造 Store, nil 表示对应文档未加载
// 目录的索引在这里重建, 之后多个会话可以并发只读
func New(catalog *model.Catalog, routes *model.RouteDocument) *Store {
	s := &Store{catalog: catalog, routes: routes}
	if catalog == nil {
		s.catalogErr = ErrNotLoaded
	} else {
		catalog.BuildIndex()
	}
	if routes == nil {
		s.routesErr = ErrNotLoaded
	}
	return s
}

// Catalog 返回行程目录
func (s *Store) Catalog() (*model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, notLoaded(CatalogFile, s.catalogErr)
	}
	return s.catalog, nil
}

// Routes 返回路线参考文档
func (s *Store) Routes() (*model.RouteDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.routes == nil {
		return nil, notLoaded(RoutesFile, s.routesErr)
	}
	return s.routes, nil
}

func notLoaded(name string, cause error) error {
	if cause == nil || errors.Is(cause, ErrNotLoaded) {
		return fmt.Errorf("%s: %w", name, ErrNotLoaded)
	}
	return fmt.Errorf("%s: %w: %v", name, ErrNotLoaded, cause)
}

// LoadCatalog 读取并校验行程目录
func LoadCatalog(ctx context.Context, src Source) (*model.Catalog, error) {
	rc, err := src.Open(ctx, CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("打开 %s 失败: %w", CatalogFile, err)
	}
	defer rc.Close()
	return DecodeCatalog(rc)
}

// LoadRoutes 读取路线参考文档
func LoadRoutes(ctx context.Context, src Source) (*model.RouteDocument, error) {
	rc, err := src.Open(ctx, RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("打开 %s 失败: %w", RoutesFile, err)
	}
	defer rc.Close()
	return DecodeRoutes(rc)
}

var validate = validator.New()

// DecodeCatalog 解析行程目录并在加载边界做校验:
// ID 与名称非空, 坐标存在且在合法范围内 (只有 (0,0) 视为缺失), 地点 ID 唯一, 天数从 1 开始连续且不重复。
// 表外分类原样保留; 酒店缺少分类时补为 hotel。
func DecodeCatalog(r io.Reader) (*model.Catalog, error) {
	var c model.Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("解析行程目录失败: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("行程目录校验失败: %w", err)
	}

	for i := range c.Hotels {
		if c.Hotels[i].Category == "" {
			c.Hotels[i].Category = model.CategoryHotel
		}
	}

	seen := make(map[string]bool)
	for _, loc := range c.Locations() {
		if loc.Coordinates.IsZero() {
			return nil, fmt.Errorf("行程目录校验失败: 地点 %s 缺少坐标", loc.ID)
		}
		if seen[loc.ID] {
			return nil, fmt.Errorf("行程目录校验失败: 地点 ID 重复: %s", loc.ID)
		}
		seen[loc.ID] = true
		if !loc.Category.Known() {
			log.Printf("地点 %s 的分类 %q 不在表内, 使用默认标记", loc.ID, loc.Category)
		}
	}

	days := make(map[int]bool, len(c.DailyItinerary))
	for _, d := range c.DailyItinerary {
		if days[d.Day] {
			return nil, fmt.Errorf("行程目录校验失败: 第 %d 天重复", d.Day)
		}
		days[d.Day] = true
	}
	for n := 1; n <= len(c.DailyItinerary); n++ {
		if !days[n] {
			return nil, fmt.Errorf("行程目录校验失败: 缺少第 %d 天", n)
		}
	}

	c.BuildIndex()
	return &c, nil
}

// DecodeRoutes 解析路线参考文档
func DecodeRoutes(r io.Reader) (*model.RouteDocument, error) {
	var doc model.RouteDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析路线资料失败: %w", err)
	}
	return &doc, nil
}

// DanglingRef 行程中引用了目录里不存在的地点或酒店
type DanglingRef struct {
	Day   int    `json:"day"`
	Field string `json:"field"` // "hotel" 或 "locations"
	ID    string `json:"id"`
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("第 %d 天 %s 引用了不存在的 %s", d.Day, d.Field, d.ID)
}

// CheckReferences 列出所有悬空引用; 运行时这些引用会被静默跳过
func CheckReferences(c *model.Catalog) []DanglingRef {
	var refs []DanglingRef
	for _, d := range c.DailyItinerary {
		if d.Hotel != "" {
			if _, ok := c.Hotel(d.Hotel); !ok {
				refs = append(refs, DanglingRef{Day: d.Day, Field: "hotel", ID: d.Hotel})
			}
		}
		for _, id := range d.Locations {
			if _, ok := c.Location(id); !ok {
				refs = append(refs, DanglingRef{Day: d.Day, Field: "locations", ID: id})
			}
		}
	}
	return refs
}
