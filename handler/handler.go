package handler

import (
	"errors"
	"net/http"
	"strings"
	"travel-map/algo"
	"travel-map/session"
	"travel-map/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Handler HTTP 接口依赖的全部状态
type Handler struct {
	Store    *store.Store
	Sessions *session.Manager
	Graph    *algo.Graph // 可以为 nil, 此时路径规划接口返回 503
	DataDir  string      // 非空时以 /data 提供原始 JSON 文档

	// SessionLimiter 限制创建会话的速率, nil 表示不限制
	SessionLimiter *rate.Limiter
}

const sessionKey = "session"

// SetupRoutes 配置路由
func (h *Handler) SetupRoutes(r *gin.Engine) {
	// CORS 跨域中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if h.DataDir != "" {
		r.Static("/data", h.DataDir)
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/itinerary", h.GetItinerary)
		api.GET("/days", h.GetDays)
		api.GET("/locations/:id", h.GetLocation)
		api.GET("/info", h.GetInfo)
		api.POST("/session", RateLimit(h.SessionLimiter), h.CreateSession)

		// 道路网络
		api.POST("/path/find", h.FindPath)
		api.GET("/nodes", h.GetNodes)
		api.GET("/nodes/search", h.SearchNodes)
		api.GET("/nodes/:id", h.GetNodeByID)

		// 会话接口 (需要 Token)
		sess := api.Group("/")
		sess.Use(h.SessionMiddleware())
		{
			sess.GET("/map", h.GetMap)
			sess.GET("/selection", h.GetSelection)
			sess.GET("/timeline", h.GetTimeline)
			sess.POST("/days/:day/select", h.SelectDay)
			sess.POST("/markers/:id/click", h.ClickMarker)
			sess.DELETE("/selection/location", h.CloseLocation)
			sess.POST("/route/toggle", h.ToggleRoute)
			sess.POST("/info/open", h.OpenInfo)
			sess.DELETE("/info", h.CloseInfo)
			sess.GET("/panels/location", h.GetLocationPanel)
			sess.GET("/panels/info", h.GetInfoPanel)
		}
	}
}

// SessionMiddleware 解析 Bearer Token 并把会话存入上下文
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未提供 Token"})
			c.Abort()
			return
		}

		// 移除 "Bearer " 前缀
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		s, err := h.Sessions.Resolve(tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, session.ErrSessionNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// RateLimit 超过速率时返回 429; limiter 为 nil 时直接放行
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁, 请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// loading 文档加载失败时, 依赖它的界面保持加载状态
func loading(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":  err.Error(),
		"status": "loading",
	})
}
