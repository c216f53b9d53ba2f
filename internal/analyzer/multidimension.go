package analyzer

import (
	"sort"
	"time"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// AnalyzeMultiDimension 多维度分析：日期 × 平台 × 公斤段。
// 空输入返回全零汇总，日期范围取当天（与公斤段分析的"省略"约定不同，
// 保持既有接口口径）。
func AnalyzeMultiDimension(records []model.ShippingRecord, scheme *weightrange.Scheme) model.MultiDimensionAnalysis {
	if len(records) == 0 {
		today := time.Now().Format("2006-01-02")
		return model.MultiDimensionAnalysis{
			ByWeightRange: []model.WeightRangeBreakdown{},
			DateRange:     model.DateRange{Start: today, End: today},
		}
	}

	var totalFreight, totalOrderAmount float64
	minDate := records[0].DateKey()
	maxDate := minDate
	for i := range records {
		totalFreight += records[i].Cost
		totalOrderAmount += records[i].OrderAmount
		d := records[i].DateKey()
		if d < minDate {
			minDate = d
		}
		if d > maxDate {
			maxDate = d
		}
	}

	byWeightRange := []model.WeightRangeBreakdown{}
	for _, label := range scheme.AllLabels() {
		var rangeRecords []*model.ShippingRecord
		for i := range records {
			if weightRangeOf(&records[i], scheme) == label {
				rangeRecords = append(rangeRecords, &records[i])
			}
		}
		if len(rangeRecords) == 0 {
			continue
		}
		byWeightRange = append(byWeightRange, model.WeightRangeBreakdown{
			WeightRange: label,
			Stats:       dailyPlatformStats(rangeRecords, label),
			Subtotal:    subtotalOf(rangeRecords),
		})
	}

	return model.MultiDimensionAnalysis{
		Summary: model.MultiDimensionSummary{
			TotalOrders:         len(records),
			TotalFreight:        totalFreight,
			TotalOrderAmount:    totalOrderAmount,
			OverallFreightRatio: percent(totalFreight, totalOrderAmount),
		},
		ByWeightRange: byWeightRange,
		DateRange:     model.DateRange{Start: minDate, End: maxDate},
	}
}

// dailyPlatformStats 按（日期, 平台）分组统计并按日期升序排列
func dailyPlatformStats(records []*model.ShippingRecord, weightRange string) []model.DailyPlatformStats {
	grouped := make(map[string]*model.DailyPlatformStats)
	for _, r := range records {
		key := r.DateKey() + "_" + platformOf(r)
		stat, ok := grouped[key]
		if !ok {
			stat = &model.DailyPlatformStats{
				Date:        r.DateKey(),
				Platform:    platformOf(r),
				WeightRange: weightRange,
			}
			grouped[key] = stat
		}
		stat.OrderCount++
		stat.TotalFreight += r.Cost
		stat.TotalOrderAmount += r.OrderAmount
	}

	stats := make([]model.DailyPlatformStats, 0, len(grouped))
	for _, stat := range grouped {
		stat.FreightRatio = percent(stat.TotalFreight, stat.TotalOrderAmount)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}

func subtotalOf(records []*model.ShippingRecord) model.WeightRangeSubtotal {
	sub := model.WeightRangeSubtotal{OrderCount: len(records)}
	for _, r := range records {
		sub.TotalFreight += r.Cost
		sub.TotalOrderAmount += r.OrderAmount
	}
	sub.FreightRatio = percent(sub.TotalFreight, sub.TotalOrderAmount)
	return sub
}

// AnalyzeDailyPlatformOverall 全公斤段的每日平台统计，
// 按（日期, 平台名）双关键字升序排列
func AnalyzeDailyPlatformOverall(records []model.ShippingRecord) []model.DailyPlatformStats {
	grouped := make(map[string]*model.DailyPlatformStats)
	for i := range records {
		r := &records[i]
		key := r.DateKey() + "_" + platformOf(r)
		stat, ok := grouped[key]
		if !ok {
			stat = &model.DailyPlatformStats{
				Date:     r.DateKey(),
				Platform: platformOf(r),
			}
			grouped[key] = stat
		}
		stat.OrderCount++
		stat.TotalFreight += r.Cost
		stat.TotalOrderAmount += r.OrderAmount
	}

	stats := make([]model.DailyPlatformStats, 0, len(grouped))
	for _, stat := range grouped {
		stat.FreightRatio = percent(stat.TotalFreight, stat.TotalOrderAmount)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Date != stats[j].Date {
			return stats[i].Date < stats[j].Date
		}
		return stats[i].Platform < stats[j].Platform
	})
	return stats
}

// AnalyzeWeightRangeDetail 单个公斤段的每日平台统计与小计
func AnalyzeWeightRangeDetail(records []model.ShippingRecord, scheme *weightrange.Scheme, label string) model.WeightRangeBreakdown {
	var rangeRecords []model.ShippingRecord
	for i := range records {
		if weightRangeOf(&records[i], scheme) == label {
			rangeRecords = append(rangeRecords, records[i])
		}
	}
	breakdown := model.WeightRangeBreakdown{
		WeightRange: label,
		Stats:       []model.DailyPlatformStats{},
	}
	if len(rangeRecords) == 0 {
		return breakdown
	}
	breakdown.Stats = AnalyzeDailyPlatformOverall(rangeRecords)

	ptrs := make([]*model.ShippingRecord, len(rangeRecords))
	for i := range rangeRecords {
		ptrs[i] = &rangeRecords[i]
	}
	breakdown.Subtotal = subtotalOf(ptrs)
	return breakdown
}
