package handler

import (
	"net/http"
	"travel-map/dayview"
	"travel-map/markers"
	"travel-map/model"
	"travel-map/panels"

	"github.com/gin-gonic/gin"
)

// LegendEntry 图例中的一个分类
type LegendEntry struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Icon     string         `json:"icon"`
	Color    string         `json:"color"`
}

// Legend 按已知分类生成图例
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, LegendEntry{
			Category: c,
			Label:    panels.CategoryLabel(c),
			Icon:     markers.IconFor(c),
			Color:    markers.ColorFor(c),
		})
	}
	return out
}

// GetItinerary 返回完整的行程目录和图例
func (h *Handler) GetItinerary(c *gin.Context) {
	catalog, err := h.Store.Catalog()
	if err != nil {
		loading(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"catalog": catalog,
		"legend":  Legend(),
	})
}

// GetDays 返回时间轴 (不带选中状态)
func (h *Handler) GetDays(c *gin.Context) {
	catalog, err := h.Store.Catalog()
	if err != nil {
		loading(c, err)
		return
	}
	days := dayview.Timeline(catalog, 0)
	c.JSON(http.StatusOK, gin.H{
		"count": len(days),
		"days":  days,
	})
}

// GetLocation 返回地点详情
func (h *Handler) GetLocation(c *gin.Context) {
	catalog, err := h.Store.Catalog()
	if err != nil {
		loading(c, err)
		return
	}
	loc, ok := catalog.Location(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "地点不存在"})
		return
	}
	c.JSON(http.StatusOK, panels.Location(loc))
}

// GetInfo 返回实用资讯
func (h *Handler) GetInfo(c *gin.Context) {
	doc, err := h.Store.Routes()
	if err != nil {
		loading(c, err)
		return
	}
	info, _ := panels.InfoFrom(doc)
	c.JSON(http.StatusOK, gin.H{
		"info":   info,
		"routes": doc.RouteNames(),
	})
}
