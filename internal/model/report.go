package model

// WeightRangeStats 单个公斤段的统计
type WeightRangeStats struct {
	Range       string  `json:"range"`       // 公斤段标签，如 "2-3kg"
	Count       int     `json:"count"`       // 该公斤段订单数
	TotalCost   float64 `json:"totalCost"`   // 该公斤段总运费
	AverageCost float64 `json:"averageCost"` // 该公斤段平均运费
	Percentage  float64 `json:"percentage"`  // 占总订单数百分比
}

// DateRange 日期范围
type DateRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// AnalysisResult 公斤段分析结果
type AnalysisResult struct {
	TotalRecords int                `json:"totalRecords"`
	TotalCost    float64            `json:"totalCost"`
	AverageCost  float64            `json:"averageCost"`
	WeightRanges []WeightRangeStats `json:"weightRanges"`
	DateRange    *DateRange         `json:"dateRange,omitempty"` // 空数据时省略
}

// DailyPlatformStats 每日平台统计
type DailyPlatformStats struct {
	Date             string  `json:"date"`     // YYYY-MM-DD
	Platform         string  `json:"platform"` // 平台名称
	OrderCount       int     `json:"orderCount"`
	TotalFreight     float64 `json:"totalFreight"`
	TotalOrderAmount float64 `json:"totalOrderAmount"`
	FreightRatio     float64 `json:"freightRatio"`          // 运费占销售额比例（%）
	WeightRange      string  `json:"weightRange,omitempty"` // 公斤段（分段统计时填写）
}

// MultiDimensionSummary 多维度分析汇总
type MultiDimensionSummary struct {
	TotalOrders         int     `json:"totalOrders"`
	TotalFreight        float64 `json:"totalFreight"`
	TotalOrderAmount    float64 `json:"totalOrderAmount"`
	OverallFreightRatio float64 `json:"overallFreightRatio"` // 整体运费占比（%）
}

// WeightRangeSubtotal 单个公斤段的小计
type WeightRangeSubtotal struct {
	OrderCount       int     `json:"orderCount"`
	TotalFreight     float64 `json:"totalFreight"`
	TotalOrderAmount float64 `json:"totalOrderAmount"`
	FreightRatio     float64 `json:"freightRatio"` // %
}

// WeightRangeBreakdown 单个公斤段的每日平台明细与小计
type WeightRangeBreakdown struct {
	WeightRange string               `json:"weightRange"`
	Stats       []DailyPlatformStats `json:"stats"`
	Subtotal    WeightRangeSubtotal  `json:"subtotal"`
}

// MultiDimensionAnalysis 多维度分析结果：日期 × 平台 × 公斤段
type MultiDimensionAnalysis struct {
	Summary       MultiDimensionSummary  `json:"summary"`
	ByWeightRange []WeightRangeBreakdown `json:"byWeightRange"`
	DateRange     DateRange              `json:"dateRange"`
}

// ChannelMetrics 渠道单日指标
type ChannelMetrics struct {
	FreightRatio float64 `json:"freightRatio"` // 运费占比（%）
	OrderAmount  float64 `json:"orderAmount"`
	Freight      float64 `json:"freight"`
	OrderCount   int     `json:"orderCount"`
}

// ChannelTrend 渠道趋势：某一天各渠道的运费占比
type ChannelTrend struct {
	Date     string                    `json:"date"`
	Channels map[string]ChannelMetrics `json:"channels"`
}

// ChannelSummary 渠道汇总
type ChannelSummary struct {
	Channel          string  `json:"channel"`
	SalesRatio       float64 `json:"salesRatio"` // 销售额占比（%）
	TotalOrderAmount float64 `json:"totalOrderAmount"`
	TotalFreight     float64 `json:"totalFreight"`
	AvgFreightRatio  float64 `json:"avgFreightRatio"` // 平均运费占比（%）
	OrderCount       int     `json:"orderCount"`
}

// WeightMetrics 公斤段分布中单段的指标
type WeightMetrics struct {
	Freight      float64 `json:"freight"`      // 该公斤段运费
	FreightRatio float64 `json:"freightRatio"` // 占该渠道总运费比例（%）
	OrderCount   int     `json:"orderCount"`
	AvgFreight   float64 `json:"avgFreight"`
}

// WeightDistribution 单个渠道的公斤段运费分布
type WeightDistribution struct {
	Channel string                   `json:"channel"`
	Weights map[string]WeightMetrics `json:"weights"`
}

// DashboardSummary 仪表板整体汇总
type DashboardSummary struct {
	TotalOrderAmount    float64   `json:"totalOrderAmount"`
	TotalFreight        float64   `json:"totalFreight"`
	OverallFreightRatio float64   `json:"overallFreightRatio"` // %
	OrderCount          int       `json:"orderCount"`
	DateRange           DateRange `json:"dateRange"`
}

// DashboardData 仪表板数据响应
type DashboardData struct {
	Summary             DashboardSummary     `json:"summary"`
	ChannelTrends       []ChannelTrend       `json:"channelTrends"`
	ChannelSummaries    []ChannelSummary     `json:"channelSummaries"`
	WeightDistributions []WeightDistribution `json:"weightDistributions"`
}

// PlatformMetrics 运费报表中单平台单行指标。
// 注意：报表中的占比为小数（非百分数），与仪表板口径不同。
type PlatformMetrics struct {
	SalesRatio   float64 `json:"salesRatio"`   // 当日销售额占比（小数）
	OrderAmount  float64 `json:"orderAmount"`
	Freight      float64 `json:"freight"`
	FreightRatio float64 `json:"freightRatio"` // 运费/订单金额（小数）
	OrderCount   int     `json:"orderCount"`
}

// DailyReport 运费报表单行：日期 × 公斤段 × 各平台
type DailyReport struct {
	Date        string                     `json:"date"`
	WeightRange string                     `json:"weightRange"`
	Platforms   map[string]PlatformMetrics `json:"platforms"`
}

// PlatformSummary 运费报表中单平台汇总
type PlatformSummary struct {
	OrderAmount  float64 `json:"orderAmount"`
	Freight      float64 `json:"freight"`
	SalesRatio   float64 `json:"salesRatio"`   // 小数
	FreightRatio float64 `json:"freightRatio"` // 小数
}

// FreightReportSummary 运费报表汇总
type FreightReportSummary struct {
	TotalOrderAmount    float64                    `json:"totalOrderAmount"`
	TotalFreight        float64                    `json:"totalFreight"`
	OverallFreightRatio float64                    `json:"overallFreightRatio"` // 小数
	PlatformSummary     map[string]PlatformSummary `json:"platformSummary"`
}

// FreightReport 运费分析报表
type FreightReport struct {
	DailyReports []DailyReport         `json:"dailyReports"`
	Summary      *FreightReportSummary `json:"summary"` // 空数据时为 null
}

// StoreStats 存储层统计信息
type StoreStats struct {
	TotalRecords int          `json:"totalRecords"`
	DateRange    *MinMaxRange `json:"dateRange"` // 空数据时为 null
	Platforms    []string     `json:"platforms"`
}

// MinMaxRange 最早/最晚日期
type MinMaxRange struct {
	Min string `json:"min"` // YYYY-MM-DD
	Max string `json:"max"` // YYYY-MM-DD
}
