package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tom88115/freight-weight-analyzer/internal/analyzer"
	"github.com/tom88115/freight-weight-analyzer/internal/api"
	"github.com/tom88115/freight-weight-analyzer/internal/config"
	"github.com/tom88115/freight-weight-analyzer/internal/report"
	"github.com/tom88115/freight-weight-analyzer/internal/store"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  store.RecordStore
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, recordStore store.RecordStore, log *logrus.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	scheme := weightrange.SchemeByName(cfg.Business.WeightScheme)
	rules := analyzer.DashboardRules{
		ExcludedPlatforms: cfg.Business.ExcludedPlatforms,
		RenameTable:       cfg.Business.RenameTable,
	}
	cache := report.NewCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second)

	handler := api.NewHandler(recordStore, scheme, rules, cache, log)

	s := &Server{
		router: gin.Default(),
		store:  recordStore,
		api:    handler,
	}
	s.setupRoutes()
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 健康检查
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// 根路径：接口索引
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "运费公斤段分析系统 API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"upload":         "/api/upload",
				"analytics":      "/api/analytics",
				"records":        "/api/analytics/records",
				"multiDimension": "/api/multi-dimension",
				"dashboard":      "/api/dashboard",
				"freightReport":  "/api/freight-report",
				"health":         "/health",
			},
		})
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}

// GetStore 获取存储（用于测试与启动时预加载）
func (s *Server) GetStore() store.RecordStore {
	return s.store
}
