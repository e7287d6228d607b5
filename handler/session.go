package handler

import (
	"errors"
	"net/http"
	"strconv"
	"travel-map/mapsurface"
	"travel-map/session"
	"travel-map/store"

	"github.com/gin-gonic/gin"
)

// CreateSession 创建浏览会话并签发 Token
func (h *Handler) CreateSession(c *gin.Context) {
	s, token, err := h.Sessions.Create(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrTooManySessions) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"session_id": s.ID(),
		"has_map":    s.HasMap(),
		"selection":  s.Selection(),
	})
}

// GetMap 返回地图快照; 地图不可用时 available 为 false
func (h *Handler) GetMap(c *gin.Context) {
	s := currentSession(c)
	snap, ok := s.Map()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"map":       snap,
	})
}

// GetSelection 返回界面选择状态
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Selection())
}

// GetTimeline 返回带选中状态的时间轴
func (h *Handler) GetTimeline(c *gin.Context) {
	days, err := currentSession(c).Timeline()
	if err != nil {
		loading(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(days),
		"days":  days,
	})
}

// SelectDay 选中某一天
func (h *Handler) SelectDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的天数: " + c.Param("day")})
		return
	}
	if _, err := h.Store.Catalog(); err != nil {
		loading(c, err)
		return
	}

	s := currentSession(c)
	changed := s.SelectDay(day)
	c.JSON(http.StatusOK, gin.H{
		"selection":        s.Selection(),
		"viewport_changed": changed,
	})
}

// ClickMarker 点击地图标记
func (h *Handler) ClickMarker(c *gin.Context) {
	s := currentSession(c)
	if err := s.ClickMarker(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, session.ErrNoMap):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, mapsurface.ErrMarkerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	detail, _ := s.LocationPanel()
	c.JSON(http.StatusOK, gin.H{
		"selection": s.Selection(),
		"detail":    detail,
	})
}

// CloseLocation 关闭地点详情
func (h *Handler) CloseLocation(c *gin.Context) {
	s := currentSession(c)
	s.CloseLocation()
	c.JSON(http.StatusOK, s.Selection())
}

// ToggleRoute 切换路线显示; ?wait=true 时等路线请求结束再返回
func (h *Handler) ToggleRoute(c *gin.Context) {
	s := currentSession(c)
	done := s.ToggleRoute(c.Request.Context())
	if c.Query("wait") == "true" {
		select {
		case <-done:
		case <-c.Request.Context().Done():
		}
	}
	c.JSON(http.StatusOK, s.Selection())
}

// OpenInfo 打开实用资讯面板
func (h *Handler) OpenInfo(c *gin.Context) {
	s := currentSession(c)
	s.OpenInfo()
	c.JSON(http.StatusOK, s.Selection())
}

// CloseInfo 关闭实用资讯面板
func (h *Handler) CloseInfo(c *gin.Context) {
	s := currentSession(c)
	s.CloseInfo()
	c.JSON(http.StatusOK, s.Selection())
}

// GetLocationPanel 返回选中地点的详情
func (h *Handler) GetLocationPanel(c *gin.Context) {
	detail, ok := currentSession(c).LocationPanel()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"open": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"open":   true,
		"detail": detail,
	})
}

// GetInfoPanel 返回实用资讯面板; 资料未加载时面板保持加载状态
func (h *Handler) GetInfoPanel(c *gin.Context) {
	s := currentSession(c)
	if !s.Selection().InfoOpen {
		c.JSON(http.StatusOK, gin.H{"open": false})
		return
	}
	info, ok := s.InfoPanel()
	if !ok {
		_, err := h.Store.Routes()
		if err == nil {
			err = store.ErrNotLoaded
		}
		loading(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"open": true,
		"info": info,
	})
}
