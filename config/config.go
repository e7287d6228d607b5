// Package config 读取 config.toml, 文件不存在时使用内置默认值; 密钥类配置可由环境变量覆盖。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"travel-map/db"

	"github.com/BurntSushi/toml"
)

// Config 全部配置
type Config struct {
	Data       DataConfig       `toml:"data"`
	Server     ServerConfig     `toml:"server"`
	Map        MapConfig        `toml:"map"`
	Directions DirectionsConfig `toml:"directions"`
	Session    SessionConfig    `toml:"session"`
	Database   DatabaseConfig   `toml:"database"`
}

// DataConfig 行程文档位置; BaseURL 非空时从静态文件服务器读取
type DataConfig struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type MapConfig struct {
	APIKey    string `toml:"api_key"`
	Container string `toml:"container"`
}

// DirectionsConfig 路线服务
// Provider: "auto" (有 API key 用 google, 否则用本地道路网络), "google" 或 "graph"
type DirectionsConfig struct {
	Provider    string  `toml:"provider"`
	Route       string  `toml:"route"`
	RateLimit   float64 `toml:"rate_limit"`
	RoadNetwork string  `toml:"road_network"`
}

// SessionConfig 会话; CreateRate 为每秒允许创建的会话数, MaxSessions 为同时存活的上限
type SessionConfig struct {
	Secret      string  `toml:"secret"`
	TTL         string  `toml:"ttl"`
	MaxSessions int     `toml:"max_sessions"`
	CreateRate  float64 `toml:"create_rate"`
	CreateBurst int     `toml:"create_burst"`
}

// DatabaseConfig 道路网络数据库; Enabled 为 false 时从 RoadNetwork JSON 读取
type DatabaseConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
}

// Defaults 内置默认值
func Defaults() *Config {
	return &Config{
		Data:   DataConfig{Dir: "data"},
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Map:    MapConfig{Container: "map"},
		Directions: DirectionsConfig{
			Provider:    "auto",
			Route:       "route_brisbane_to_gold_coast",
			RateLimit:   5,
			RoadNetwork: "data/road_network.json",
		},
		Session: SessionConfig{
			Secret:      "change-me-in-production",
			TTL:         "24h",
			MaxSessions: 1000,
			CreateRate:  1,
			CreateBurst: 10,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "travel_map",
		},
	}
}

// Load 读取配置文件, 文件不存在时返回默认值; 最后应用环境变量
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Map.APIKey = getEnvOrDefault("GOOGLE_MAPS_API_KEY", c.Map.APIKey)
	c.Session.Secret = getEnvOrDefault("SESSION_SECRET", c.Session.Secret)
	c.Database.Host = getEnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvOrDefault("DB_PORT", c.Database.Port)
	c.Database.User = getEnvOrDefault("DB_USER", c.Database.User)
	c.Database.Password = getEnvOrDefault("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnvOrDefault("DB_NAME", c.Database.Name)
	if v := os.Getenv("DB_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Database.Enabled = b
		}
	}
}

// Validate 检查取值
func (c *Config) Validate() error {
	switch c.Directions.Provider {
	case "auto", "google", "graph":
	default:
		return fmt.Errorf("未知的路线服务: %q", c.Directions.Provider)
	}
	if c.Directions.Provider == "google" && c.Map.APIKey == "" {
		return fmt.Errorf("路线服务为 google 时必须配置 API key")
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}
	if c.Session.MaxSessions < 0 || c.Session.CreateRate < 0 || c.Session.CreateBurst < 0 {
		return fmt.Errorf("会话上限与创建速率不能为负数")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("无效的端口: %d", c.Server.Port)
	}
	return nil
}

// SessionTTL 会话有效期
func (c *Config) SessionTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 0, fmt.Errorf("无效的会话有效期 %q: %w", c.Session.TTL, err)
	}
	return d, nil
}

// UseGoogle 是否使用 Google 路线服务
func (c *Config) UseGoogle() bool {
	switch c.Directions.Provider {
	case "google":
		return true
	case "auto":
		return c.Map.APIKey != ""
	default:
		return false
	}
}

// DB 转换为数据库连接配置
func (c *Config) DB() db.Config {
	return db.Config{
		Host:       c.Database.Host,
		Port:       c.Database.Port,
		User:       c.Database.User,
		Password:   c.Database.Password,
		Name:       c.Database.Name,
		MaxRetries: 5,
	}
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
