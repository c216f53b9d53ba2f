package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tom88115/freight-weight-analyzer/internal/analyzer"
	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/store"
)

const (
	dashboardCacheKey     = "dashboard"
	freightReportCacheKey = "freight-report"
)

// GetDashboard 运营仪表板：渠道趋势、渠道汇总、公斤段分布。
// 记录数未变且未超过缓存 TTL 时复用上次计算结果。
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	records, err := h.store.Query(store.Filter{})
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "暂无数据",
			"data":    nil,
		})
		return
	}

	started := time.Now()
	value, cached := h.cache.GetOrCompute(dashboardCacheKey, len(records), func() interface{} {
		return analyzer.BuildDashboard(records, h.scheme, h.rules)
	})
	data, _ := value.(*model.DashboardData)
	if data == nil {
		// 记录全部被渠道剔除规则过滤掉
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "暂无数据",
			"data":    nil,
		})
		return
	}

	if !cached {
		h.log.WithField("elapsed", time.Since(started).String()).Info("仪表板数据计算完成")
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"cached":  cached,
	})
}

// GetFreightReport 运费分析报表：日期 × 公斤段 × 平台
// GET /api/freight-report
func (h *Handler) GetFreightReport(c *gin.Context) {
	records, err := h.store.Query(store.Filter{})
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "暂无数据",
			"data": model.FreightReport{
				DailyReports: []model.DailyReport{},
			},
		})
		return
	}

	value, cached := h.cache.GetOrCompute(freightReportCacheKey, len(records), func() interface{} {
		report := analyzer.BuildFreightReport(records, h.scheme)
		return &report
	})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    value,
		"cached":  cached,
	})
}
