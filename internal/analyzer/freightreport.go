package analyzer

import (
	"sort"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// 运费报表中覆盖当天全部记录的伪公斤段
const allWeightRanges = "全公斤段"

// BuildFreightReport 运费分析报表：按 日期 × 公斤段 × 平台 展示，
// 对齐 Excel 报表模板。每天首行为"全公斤段"，其后为有数据的各公斤段；
// salesRatio 为该平台占当天订单金额的份额。本报表的占比均为小数，
// 不乘 100，与前端模板口径一致。空输入返回空报表、无汇总。
func BuildFreightReport(records []model.ShippingRecord, scheme *weightrange.Scheme) model.FreightReport {
	if len(records) == 0 {
		return model.FreightReport{DailyReports: []model.DailyReport{}}
	}

	platformSet := make(map[string]bool)
	dateSet := make(map[string]bool)
	for i := range records {
		platformSet[platformOf(&records[i])] = true
		dateSet[records[i].DateKey()] = true
	}
	allPlatforms := make([]string, 0, len(platformSet))
	for p := range platformSet {
		allPlatforms = append(allPlatforms, p)
	}
	sort.Strings(allPlatforms)
	allDates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		allDates = append(allDates, d)
	}
	sort.Strings(allDates)

	// 当天总订单金额，销售额占比的分母
	dailyAmounts := make(map[string]float64)
	for i := range records {
		dailyAmounts[records[i].DateKey()] += records[i].OrderAmount
	}

	weightRanges := append([]string{allWeightRanges}, scheme.AllLabels()...)

	dailyReports := []model.DailyReport{}
	for _, date := range allDates {
		var dateRecords []*model.ShippingRecord
		for i := range records {
			if records[i].DateKey() == date {
				dateRecords = append(dateRecords, &records[i])
			}
		}

		for _, label := range weightRanges {
			var rangeRecords []*model.ShippingRecord
			if label == allWeightRanges {
				rangeRecords = dateRecords
			} else {
				for _, r := range dateRecords {
					if weightRangeOf(r, scheme) == label {
						rangeRecords = append(rangeRecords, r)
					}
				}
			}
			if len(rangeRecords) == 0 {
				continue
			}

			report := model.DailyReport{
				Date:        date,
				WeightRange: label,
				Platforms:   make(map[string]model.PlatformMetrics),
			}
			dayAmount := dailyAmounts[date]
			for _, platform := range allPlatforms {
				var orderAmount, freight float64
				count := 0
				for _, r := range rangeRecords {
					if platformOf(r) != platform {
						continue
					}
					orderAmount += r.OrderAmount
					freight += r.Cost
					count++
				}
				if count == 0 {
					continue
				}
				report.Platforms[platform] = model.PlatformMetrics{
					SalesRatio:   ratio(orderAmount, dayAmount),
					OrderAmount:  orderAmount,
					Freight:      freight,
					FreightRatio: ratio(freight, orderAmount),
					OrderCount:   count,
				}
			}
			dailyReports = append(dailyReports, report)
		}
	}

	// 汇总：整体与各平台
	var totalOrderAmount, totalFreight float64
	for i := range records {
		totalOrderAmount += records[i].OrderAmount
		totalFreight += records[i].Cost
	}
	platformSummary := make(map[string]model.PlatformSummary, len(allPlatforms))
	for _, platform := range allPlatforms {
		var orderAmount, freight float64
		for i := range records {
			if platformOf(&records[i]) != platform {
				continue
			}
			orderAmount += records[i].OrderAmount
			freight += records[i].Cost
		}
		platformSummary[platform] = model.PlatformSummary{
			OrderAmount:  orderAmount,
			Freight:      freight,
			SalesRatio:   ratio(orderAmount, totalOrderAmount),
			FreightRatio: ratio(freight, orderAmount),
		}
	}

	return model.FreightReport{
		DailyReports: dailyReports,
		Summary: &model.FreightReportSummary{
			TotalOrderAmount:    totalOrderAmount,
			TotalFreight:        totalFreight,
			OverallFreightRatio: ratio(totalFreight, totalOrderAmount),
			PlatformSummary:     platformSummary,
		},
	}
}
