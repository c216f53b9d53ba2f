// Package api HTTP 接口层。
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tom88115/freight-weight-analyzer/internal/analyzer"
	"github.com/tom88115/freight-weight-analyzer/internal/report"
	"github.com/tom88115/freight-weight-analyzer/internal/store"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// Handler API 处理器
type Handler struct {
	store  store.RecordStore
	scheme *weightrange.Scheme
	rules  analyzer.DashboardRules
	cache  *report.Cache
	log    *logrus.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(s store.RecordStore, scheme *weightrange.Scheme, rules analyzer.DashboardRules, cache *report.Cache, log *logrus.Logger) *Handler {
	return &Handler{
		store:  s,
		scheme: scheme,
		rules:  rules,
		cache:  cache,
		log:    log,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 数据导入
	router.POST("/upload", h.Upload)

	// 公斤段分析与记录管理
	router.GET("/analytics", h.GetAnalytics)
	router.GET("/analytics/records", h.ListRecords)
	router.DELETE("/analytics/records", h.ClearRecords)
	router.GET("/analytics/stats", h.GetStats)
	router.GET("/analytics/export", h.ExportRecords)

	// 多维度分析
	router.GET("/multi-dimension", h.GetMultiDimension)
	router.GET("/multi-dimension/weight-range/:range", h.GetWeightRangeDetail)

	// 运营仪表板
	router.GET("/dashboard", h.GetDashboard)

	// 运费分析报表
	router.GET("/freight-report", h.GetFreightReport)
}

func (h *Handler) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (h *Handler) serverError(c *gin.Context, message string, err error) {
	h.log.WithError(err).Error(message)
	h.fail(c, http.StatusInternalServerError, message)
}
