package api

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tom88115/freight-weight-analyzer/internal/analyzer"
	"github.com/tom88115/freight-weight-analyzer/internal/excel"
	"github.com/tom88115/freight-weight-analyzer/internal/store"
)

// parseDayParam 解析 YYYY-MM-DD 查询参数
func parseDayParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// queryFilter 由查询参数构造存储层过滤条件。
// endDate 为闭区间：推到当天最后一刻，带时刻的记录也能命中。
func queryFilter(c *gin.Context) (store.Filter, error) {
	f := store.Filter{Carrier: c.Query("carrier")}

	from, err := parseDayParam(c.Query("startDate"))
	if err != nil {
		return f, fmt.Errorf("startDate 格式应为 YYYY-MM-DD")
	}
	f.DateFrom = from

	to, err := parseDayParam(c.Query("endDate"))
	if err != nil {
		return f, fmt.Errorf("endDate 格式应为 YYYY-MM-DD")
	}
	if to != nil {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &endOfDay
	}
	return f, nil
}

// GetAnalytics 公斤段分析
// GET /api/analytics?startDate=&endDate=&carrier=
func (h *Handler) GetAnalytics(c *gin.Context) {
	filter, err := queryFilter(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.Query(filter)
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}

	h.ok(c, analyzer.AnalyzeWeightRanges(records, h.scheme))
}

// ListRecords 分页查询运费记录，按日期倒序
// GET /api/analytics/records?page=&limit=&carrier=&startDate=&endDate=
func (h *Handler) ListRecords(c *gin.Context) {
	filter, err := queryFilter(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}

	records, err := h.store.Query(filter)
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	total := len(records)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records[start:end],
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + limit - 1) / limit,
		},
	})
}

// ClearRecords 清空全部记录（管理用途）
// DELETE /api/analytics/records
func (h *Handler) ClearRecords(c *gin.Context) {
	removed, err := h.store.Clear()
	if err != nil {
		h.serverError(c, "删除失败", err)
		return
	}
	h.cache.Invalidate(dashboardCacheKey)
	h.cache.Invalidate(freightReportCacheKey)

	h.log.WithField("removed", removed).Info("已清空运费记录")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("已删除 %d 条记录", removed),
	})
}

// GetStats 存储层统计信息
// GET /api/analytics/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		h.serverError(c, "获取统计信息失败", err)
		return
	}
	h.ok(c, stats)
}

// ExportRecords 导出当前记录为 Excel
// GET /api/analytics/export
func (h *Handler) ExportRecords(c *gin.Context) {
	filter, err := queryFilter(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.Query(filter)
	if err != nil {
		h.serverError(c, "查询数据失败", err)
		return
	}

	file, err := excel.BuildWorkbook(records)
	if err != nil {
		h.serverError(c, "导出失败", err)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		h.serverError(c, "导出失败", err)
		return
	}

	filename := fmt.Sprintf("运费数据_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
