package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tom88115/freight-weight-analyzer/internal/analyzer"
	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/store"
)

// MultiDimensionResponse 多维度分析响应：
// 汇总 + 全公斤段每日平台数据 + 各公斤段明细
type MultiDimensionResponse struct {
	Summary       model.MultiDimensionSummary  `json:"summary"`
	Overall       []model.DailyPlatformStats   `json:"overall"`
	ByWeightRange []model.WeightRangeBreakdown `json:"byWeightRange"`
	DateRange     model.DateRange              `json:"dateRange"`
}

// GetMultiDimension 多维度分析：日期 × 平台 × 公斤段
// GET /api/multi-dimension
func (h *Handler) GetMultiDimension(c *gin.Context) {
	records, err := h.store.Query(store.Filter{})
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}

	if len(records) == 0 {
		today := time.Now().Format("2006-01-02")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "暂无数据",
			"data": MultiDimensionResponse{
				Overall:       []model.DailyPlatformStats{},
				ByWeightRange: []model.WeightRangeBreakdown{},
				DateRange:     model.DateRange{Start: today, End: today},
			},
		})
		return
	}

	analysis := analyzer.AnalyzeMultiDimension(records, h.scheme)
	h.ok(c, MultiDimensionResponse{
		Summary:       analysis.Summary,
		Overall:       analyzer.AnalyzeDailyPlatformOverall(records),
		ByWeightRange: analysis.ByWeightRange,
		DateRange:     analysis.DateRange,
	})
}

// GetWeightRangeDetail 指定公斤段的每日平台统计
// GET /api/multi-dimension/weight-range/:range
func (h *Handler) GetWeightRangeDetail(c *gin.Context) {
	label := c.Param("range")

	records, err := h.store.Query(store.Filter{})
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}

	detail := analyzer.AnalyzeWeightRangeDetail(records, h.scheme, label)
	if len(detail.Stats) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "公斤段 " + label + " 暂无数据",
			"data":    detail,
		})
		return
	}
	h.ok(c, detail)
}
