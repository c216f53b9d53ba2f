// Package analyzer 聚合计算层。
//
// 所有函数都是输入记录集合的纯函数：不修改入参、不持有状态、
// 对满足入库约束（weight>0 且 cost>0）的任意输入都不报错。
// 空集合返回各自定义好的零值形态，除零比率一律取 0。
package analyzer

import (
	"time"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// 平台缺失时的占位名
const unknownPlatform = "未知"

func platformOf(r *model.ShippingRecord) string {
	if r.Platform == "" {
		return unknownPlatform
	}
	return r.Platform
}

// weightRangeOf 取记录的公斤段标签，导入时未填的按重量现算
func weightRangeOf(r *model.ShippingRecord, scheme *weightrange.Scheme) string {
	if r.WeightRange != "" {
		return r.WeightRange
	}
	return scheme.Classify(r.Weight)
}

func ratio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// percent 百分比形式的占比，分母为 0 时取 0
func percent(numerator, denominator float64) float64 {
	return ratio(numerator, denominator) * 100
}

// AnalyzeWeightRanges 公斤段分析：总量、均值与各公斤段统计。
// 空输入返回全零结果且不含日期范围；无记录的公斤段不出现在结果中。
func AnalyzeWeightRanges(records []model.ShippingRecord, scheme *weightrange.Scheme) model.AnalysisResult {
	if len(records) == 0 {
		return model.AnalysisResult{WeightRanges: []model.WeightRangeStats{}}
	}

	totalRecords := len(records)
	var totalCost float64
	for i := range records {
		totalCost += records[i].Cost
	}

	grouped := make(map[string][]*model.ShippingRecord)
	for i := range records {
		label := weightRangeOf(&records[i], scheme)
		grouped[label] = append(grouped[label], &records[i])
	}

	// 按方案声明顺序输出，无记录的段过滤掉
	stats := make([]model.WeightRangeStats, 0, len(grouped))
	for _, label := range scheme.AllLabels() {
		group := grouped[label]
		if len(group) == 0 {
			continue
		}
		var groupCost float64
		for _, r := range group {
			groupCost += r.Cost
		}
		stats = append(stats, model.WeightRangeStats{
			Range:       label,
			Count:       len(group),
			TotalCost:   groupCost,
			AverageCost: groupCost / float64(len(group)),
			Percentage:  percent(float64(len(group)), float64(totalRecords)),
		})
	}

	minDate := records[0].DateKey()
	maxDate := minDate
	for i := range records {
		d := records[i].DateKey()
		if d < minDate {
			minDate = d
		}
		if d > maxDate {
			maxDate = d
		}
	}

	return model.AnalysisResult{
		TotalRecords: totalRecords,
		TotalCost:    totalCost,
		AverageCost:  totalCost / float64(totalRecords),
		WeightRanges: stats,
		DateRange:    &model.DateRange{Start: minDate, End: maxDate},
	}
}

// FilterByDateRange 按日期闭区间过滤，两端均可为 nil
func FilterByDateRange(records []model.ShippingRecord, start, end *time.Time) []model.ShippingRecord {
	filtered := make([]model.ShippingRecord, 0, len(records))
	for i := range records {
		if start != nil && records[i].Date.Before(*start) {
			continue
		}
		if end != nil && records[i].Date.After(*end) {
			continue
		}
		filtered = append(filtered, records[i])
	}
	return filtered
}

// FilterByCarrier 按承运商精确过滤
func FilterByCarrier(records []model.ShippingRecord, carrier string) []model.ShippingRecord {
	filtered := make([]model.ShippingRecord, 0, len(records))
	for i := range records {
		if records[i].Carrier == carrier {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}
