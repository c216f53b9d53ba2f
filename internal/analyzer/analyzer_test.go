package analyzer

import (
	"math"
	"testing"
	"time"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// 规格书场景数据：两单 A 平台 1kg，一单 B 平台 6kg（无订单金额）
func scenarioRecords() []model.ShippingRecord {
	return []model.ShippingRecord{
		{Weight: 1, Cost: 10, OrderAmount: 100, Platform: "A", Date: day("2024-01-01")},
		{Weight: 1, Cost: 5, OrderAmount: 50, Platform: "A", Date: day("2024-01-01")},
		{Weight: 6, Cost: 20, OrderAmount: 0, Platform: "B", Date: day("2024-01-02")},
	}
}

func TestAnalyzeWeightRanges_Scenario(t *testing.T) {
	t.Parallel()

	scheme := weightrange.GenericScheme()
	result := AnalyzeWeightRanges(scenarioRecords(), scheme)

	if result.TotalRecords != 3 {
		t.Fatalf("totalRecords = %d", result.TotalRecords)
	}
	if !approx(result.TotalCost, 35) {
		t.Fatalf("totalCost = %v", result.TotalCost)
	}
	if !approx(result.AverageCost, 35.0/3) {
		t.Fatalf("averageCost = %v", result.AverageCost)
	}
	if result.DateRange == nil || result.DateRange.Start != "2024-01-01" || result.DateRange.End != "2024-01-02" {
		t.Fatalf("dateRange = %+v", result.DateRange)
	}

	// generic 方案：1kg 落入 1-5kg，6kg 落入 5-10kg
	var oneToFive *model.WeightRangeStats
	for i := range result.WeightRanges {
		if result.WeightRanges[i].Range == "1-5kg" {
			oneToFive = &result.WeightRanges[i]
		}
	}
	if oneToFive == nil {
		t.Fatalf("missing 1-5kg bracket: %+v", result.WeightRanges)
	}
	if oneToFive.Count != 2 || !approx(oneToFive.TotalCost, 15) || !approx(oneToFive.AverageCost, 7.5) {
		t.Fatalf("1-5kg stats: %+v", oneToFive)
	}
	if !approx(oneToFive.Percentage, 200.0/3) {
		t.Fatalf("1-5kg percentage = %v", oneToFive.Percentage)
	}
}

func TestAnalyzeWeightRanges_CountAndPercentageSums(t *testing.T) {
	t.Parallel()

	scheme := weightrange.ProductScheme()
	records := []model.ShippingRecord{
		{Weight: 1, Cost: 3, Date: day("2024-02-01")},
		{Weight: 2.5, Cost: 6, Date: day("2024-02-02")},
		{Weight: 2.6, Cost: 7, Date: day("2024-02-02")},
		{Weight: 5, Cost: 9, Date: day("2024-02-03")},
		{Weight: 50, Cost: 40, Date: day("2024-02-04")},
	}
	result := AnalyzeWeightRanges(records, scheme)

	countSum := 0
	percentSum := 0.0
	for _, wr := range result.WeightRanges {
		if wr.Count == 0 {
			t.Fatalf("zero-count bracket %q should be dropped", wr.Range)
		}
		countSum += wr.Count
		percentSum += wr.Percentage
	}
	if countSum != result.TotalRecords {
		t.Fatalf("count sum %d != total %d", countSum, result.TotalRecords)
	}
	if !approx(percentSum, 100) {
		t.Fatalf("percentage sum = %v", percentSum)
	}
}

func TestAnalyzeWeightRanges_Empty(t *testing.T) {
	t.Parallel()

	result := AnalyzeWeightRanges(nil, weightrange.ProductScheme())
	if result.TotalRecords != 0 || result.TotalCost != 0 || result.AverageCost != 0 {
		t.Fatalf("empty result: %+v", result)
	}
	if len(result.WeightRanges) != 0 {
		t.Fatalf("expected no brackets, got %+v", result.WeightRanges)
	}
	if result.DateRange != nil {
		t.Fatalf("empty input should omit dateRange, got %+v", result.DateRange)
	}
}

func TestAnalyzeWeightRanges_UsesStoredLabelThenClassifier(t *testing.T) {
	t.Parallel()

	scheme := weightrange.ProductScheme()
	records := []model.ShippingRecord{
		{Weight: 2.5, Cost: 5, Date: day("2024-01-01"), WeightRange: "14-16kg"}, // 导入时已带标签，按标签归组
		{Weight: 2.5, Cost: 5, Date: day("2024-01-01")},                        // 未带标签，按重量现算
	}
	result := AnalyzeWeightRanges(records, scheme)

	got := map[string]int{}
	for _, wr := range result.WeightRanges {
		got[wr.Range] = wr.Count
	}
	if got["14-16kg"] != 1 || got["2-3kg"] != 1 {
		t.Fatalf("bracket grouping: %+v", got)
	}
}

func TestFilterByDateRange(t *testing.T) {
	t.Parallel()

	records := scenarioRecords()
	start := day("2024-01-02")
	filtered := FilterByDateRange(records, &start, nil)
	if len(filtered) != 1 || filtered[0].Platform != "B" {
		t.Fatalf("filtered: %+v", filtered)
	}

	// 幂等：再过滤一次结果不变
	again := FilterByDateRange(filtered, &start, nil)
	if len(again) != len(filtered) {
		t.Fatalf("filter should be idempotent: %d vs %d", len(again), len(filtered))
	}

	end := day("2024-01-01")
	upTo := FilterByDateRange(records, nil, &end)
	if len(upTo) != 2 {
		t.Fatalf("inclusive end bound: %+v", upTo)
	}

	both := FilterByDateRange(records, &end, &end)
	if len(both) != 2 {
		t.Fatalf("single-day range: %+v", both)
	}

	if got := FilterByDateRange(records, nil, nil); len(got) != 3 {
		t.Fatalf("no bounds should keep all: %d", len(got))
	}
}

func TestFilterByCarrier(t *testing.T) {
	t.Parallel()

	records := []model.ShippingRecord{
		{Weight: 1, Cost: 1, Carrier: "顺丰", Date: day("2024-01-01")},
		{Weight: 1, Cost: 1, Carrier: "圆通", Date: day("2024-01-01")},
		{Weight: 1, Cost: 1, Date: day("2024-01-01")}, // 无承运商，非空过滤值永不匹配
	}

	sf := FilterByCarrier(records, "顺丰")
	if len(sf) != 1 || sf[0].Carrier != "顺丰" {
		t.Fatalf("filtered: %+v", sf)
	}
	if again := FilterByCarrier(sf, "顺丰"); len(again) != 1 {
		t.Fatalf("filter should be idempotent")
	}
	if got := FilterByCarrier(records, "中通"); len(got) != 0 {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestAnalyzeDailyPlatformOverall_Scenario(t *testing.T) {
	t.Parallel()

	stats := AnalyzeDailyPlatformOverall(scenarioRecords())
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}

	first := stats[0]
	if first.Date != "2024-01-01" || first.Platform != "A" {
		t.Fatalf("first row: %+v", first)
	}
	if first.OrderCount != 2 || !approx(first.TotalFreight, 15) || !approx(first.TotalOrderAmount, 150) {
		t.Fatalf("first row totals: %+v", first)
	}
	if !approx(first.FreightRatio, 10) {
		t.Fatalf("first row freightRatio = %v", first.FreightRatio)
	}

	second := stats[1]
	if second.Date != "2024-01-02" || second.Platform != "B" {
		t.Fatalf("second row: %+v", second)
	}
	if second.OrderCount != 1 || !approx(second.TotalFreight, 20) || second.TotalOrderAmount != 0 {
		t.Fatalf("second row totals: %+v", second)
	}
	// 分母为 0 时比率取 0，不出现 NaN/Inf
	if second.FreightRatio != 0 {
		t.Fatalf("zero denominator should yield 0, got %v", second.FreightRatio)
	}
}

func TestAnalyzeDailyPlatformOverall_TwoKeySort(t *testing.T) {
	t.Parallel()

	records := []model.ShippingRecord{
		{Weight: 1, Cost: 1, Platform: "京东", Date: day("2024-01-02")},
		{Weight: 1, Cost: 1, Platform: "天猫", Date: day("2024-01-01")},
		{Weight: 1, Cost: 1, Platform: "抖音", Date: day("2024-01-01")},
	}
	stats := AnalyzeDailyPlatformOverall(records)
	if len(stats) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(stats))
	}
	// 日期优先，平台名其次
	if stats[0].Date != "2024-01-01" || stats[1].Date != "2024-01-01" || stats[2].Date != "2024-01-02" {
		t.Fatalf("date order: %+v", stats)
	}
	if stats[0].Platform > stats[1].Platform {
		t.Fatalf("platform order within same date: %q, %q", stats[0].Platform, stats[1].Platform)
	}
}

func TestAnalyzeMultiDimension(t *testing.T) {
	t.Parallel()

	scheme := weightrange.GenericScheme()
	analysis := AnalyzeMultiDimension(scenarioRecords(), scheme)

	if analysis.Summary.TotalOrders != 3 || !approx(analysis.Summary.TotalFreight, 35) {
		t.Fatalf("summary: %+v", analysis.Summary)
	}
	if !approx(analysis.Summary.TotalOrderAmount, 150) {
		t.Fatalf("totalOrderAmount = %v", analysis.Summary.TotalOrderAmount)
	}
	if !approx(analysis.Summary.OverallFreightRatio, 35.0/150*100) {
		t.Fatalf("overallFreightRatio = %v", analysis.Summary.OverallFreightRatio)
	}
	if analysis.DateRange.Start != "2024-01-01" || analysis.DateRange.End != "2024-01-02" {
		t.Fatalf("dateRange: %+v", analysis.DateRange)
	}

	// 只有有数据的公斤段出现
	if len(analysis.ByWeightRange) != 2 {
		t.Fatalf("expected 2 brackets, got %+v", analysis.ByWeightRange)
	}
	first := analysis.ByWeightRange[0]
	if first.WeightRange != "1-5kg" {
		t.Fatalf("bracket order: %+v", analysis.ByWeightRange)
	}
	if first.Subtotal.OrderCount != 2 || !approx(first.Subtotal.TotalFreight, 15) {
		t.Fatalf("subtotal: %+v", first.Subtotal)
	}
	if !approx(first.Subtotal.FreightRatio, 10) {
		t.Fatalf("subtotal freightRatio = %v", first.Subtotal.FreightRatio)
	}
	if len(first.Stats) != 1 || first.Stats[0].WeightRange != "1-5kg" {
		t.Fatalf("bracket stats: %+v", first.Stats)
	}
}

func TestAnalyzeMultiDimension_Empty(t *testing.T) {
	t.Parallel()

	analysis := AnalyzeMultiDimension(nil, weightrange.ProductScheme())
	if analysis.Summary.TotalOrders != 0 || analysis.Summary.OverallFreightRatio != 0 {
		t.Fatalf("summary: %+v", analysis.Summary)
	}
	if len(analysis.ByWeightRange) != 0 {
		t.Fatalf("byWeightRange: %+v", analysis.ByWeightRange)
	}
	// 空数据时日期范围取当天
	today := time.Now().Format("2006-01-02")
	if analysis.DateRange.Start != today || analysis.DateRange.End != today {
		t.Fatalf("dateRange: %+v", analysis.DateRange)
	}
}

func TestAnalyzeMultiDimension_StatsSortedByDate(t *testing.T) {
	t.Parallel()

	scheme := weightrange.GenericScheme()
	records := []model.ShippingRecord{
		{Weight: 2, Cost: 1, OrderAmount: 10, Platform: "A", Date: day("2024-01-03")},
		{Weight: 2, Cost: 1, OrderAmount: 10, Platform: "A", Date: day("2024-01-01")},
		{Weight: 2, Cost: 1, OrderAmount: 10, Platform: "B", Date: day("2024-01-02")},
	}
	analysis := AnalyzeMultiDimension(records, scheme)
	if len(analysis.ByWeightRange) != 1 {
		t.Fatalf("brackets: %+v", analysis.ByWeightRange)
	}
	stats := analysis.ByWeightRange[0].Stats
	for i := 1; i < len(stats); i++ {
		if stats[i-1].Date > stats[i].Date {
			t.Fatalf("stats not sorted by date: %+v", stats)
		}
	}
}

func TestAnalyzeWeightRangeDetail(t *testing.T) {
	t.Parallel()

	scheme := weightrange.GenericScheme()
	detail := AnalyzeWeightRangeDetail(scenarioRecords(), scheme, "1-5kg")
	if detail.WeightRange != "1-5kg" {
		t.Fatalf("weightRange: %q", detail.WeightRange)
	}
	if detail.Subtotal.OrderCount != 2 || !approx(detail.Subtotal.TotalFreight, 15) {
		t.Fatalf("subtotal: %+v", detail.Subtotal)
	}
	if len(detail.Stats) != 1 {
		t.Fatalf("stats: %+v", detail.Stats)
	}

	// 无数据的公斤段返回零值形态
	missing := AnalyzeWeightRangeDetail(scenarioRecords(), scheme, "10-20kg")
	if len(missing.Stats) != 0 || missing.Subtotal.OrderCount != 0 {
		t.Fatalf("missing bracket should be zero-shaped: %+v", missing)
	}
}
