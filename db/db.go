package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
	"travel-map/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config 数据库连接参数
type Config struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	MaxRetries int
}

// DSN 拼接 PostgreSQL 连接串
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Australia/Brisbane",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

// Open 连接 PostgreSQL 并自动迁移道路网络表结构
// 带重试: Docker 启动时数据库可能还没准备好
func Open(cfg Config) (*gorm.DB, error) {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	var (
		gdb *gorm.DB
		err error
	)
	for i := 0; i < retries; i++ {
		gdb, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("等待数据库就绪... (%d/%d): %v", i+1, retries, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	if err := gdb.AutoMigrate(&model.Node{}, &model.Edge{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Println("数据库连接并初始化成功")
	return gdb, nil
}

// ImportRoadNetwork 从 JSON 文件导入道路网络; replace 为 true 时先清空旧数据
// 返回导入的节点数和边数
func ImportRoadNetwork(gdb *gorm.DB, path string, replace bool) (int, int, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("读取文件失败: %w", err)
	}

	var data model.RoadNetwork
	if err := json.Unmarshal(file, &data); err != nil {
		return 0, 0, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Edge{}).Error; err != nil {
				return fmt.Errorf("清空路段失败: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Node{}).Error; err != nil {
				return fmt.Errorf("清空节点失败: %w", err)
			}
		}
		if len(data.Nodes) > 0 {
			if err := tx.CreateInBatches(data.Nodes, 100).Error; err != nil {
				return fmt.Errorf("插入节点失败: %w", err)
			}
		}
		if len(data.Edges) > 0 {
			if err := tx.CreateInBatches(data.Edges, 100).Error; err != nil {
				return fmt.Errorf("插入路段失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	log.Printf("导入了 %d 个节点, %d 条路段", len(data.Nodes), len(data.Edges))
	return len(data.Nodes), len(data.Edges), nil
}

// ImportIfEmpty 数据库为空时导入道路网络 (首次运行)
func ImportIfEmpty(gdb *gorm.DB, path string) error {
	var nodeCount int64
	if err := gdb.Model(&model.Node{}).Count(&nodeCount).Error; err != nil {
		return fmt.Errorf("统计节点失败: %w", err)
	}
	if nodeCount > 0 {
		return nil
	}
	log.Printf("检测到数据库为空，正在导入 %s...", path)
	_, _, err := ImportRoadNetwork(gdb, path, false)
	return err
}

// LoadRoadNetwork 读出全部节点和路段
func LoadRoadNetwork(gdb *gorm.DB) ([]model.Node, []model.Edge, error) {
	var nodes []model.Node
	if err := gdb.Order("id").Find(&nodes).Error; err != nil {
		return nil, nil, fmt.Errorf("读取节点失败: %w", err)
	}
	var edges []model.Edge
	if err := gdb.Order("id").Find(&edges).Error; err != nil {
		return nil, nil, fmt.Errorf("读取路段失败: %w", err)
	}
	return nodes, edges, nil
}
