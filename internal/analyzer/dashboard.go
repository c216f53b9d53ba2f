package analyzer

import (
	"sort"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// DashboardRules 仪表板口径的业务规则，由配置注入：
// 剔除的渠道列表，以及渠道改名映射（如 头条放心购 → 抖音）。
type DashboardRules struct {
	ExcludedPlatforms []string
	RenameTable       map[string]string
}

// dashboardRecord 预处理后的精简记录：日期截断到天、渠道已改名
type dashboardRecord struct {
	platform    string
	date        string
	cost        float64
	orderAmount float64
	weightRange string
}

// prepare 应用剔除与改名规则，返回预处理后的记录
func (rules DashboardRules) prepare(records []model.ShippingRecord, scheme *weightrange.Scheme) []dashboardRecord {
	excluded := make(map[string]bool, len(rules.ExcludedPlatforms))
	for _, p := range rules.ExcludedPlatforms {
		excluded[p] = true
	}

	prepared := make([]dashboardRecord, 0, len(records))
	for i := range records {
		platform := platformOf(&records[i])
		if excluded[platform] {
			continue
		}
		if renamed, ok := rules.RenameTable[platform]; ok {
			platform = renamed
		}
		prepared = append(prepared, dashboardRecord{
			platform:    platform,
			date:        records[i].DateKey(),
			cost:        records[i].Cost,
			orderAmount: records[i].OrderAmount,
			weightRange: weightRangeOf(&records[i], scheme),
		})
	}
	return prepared
}

// BuildDashboard 计算运营仪表板数据：渠道趋势、渠道汇总、公斤段分布。
// 输入为空（或全部被剔除）时返回 nil，接口层以"暂无数据"响应。
func BuildDashboard(records []model.ShippingRecord, scheme *weightrange.Scheme, rules DashboardRules) *model.DashboardData {
	prepared := rules.prepare(records, scheme)
	if len(prepared) == 0 {
		return nil
	}

	// 全部渠道与日期（日期升序）
	channelSet := make(map[string]bool)
	dateSet := make(map[string]bool)
	for _, r := range prepared {
		channelSet[r.platform] = true
		dateSet[r.date] = true
	}
	allChannels := make([]string, 0, len(channelSet))
	for c := range channelSet {
		allChannels = append(allChannels, c)
	}
	sort.Strings(allChannels)
	allDates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		allDates = append(allDates, d)
	}
	sort.Strings(allDates)

	// 渠道趋势：每天每渠道的运费占比，无记录的组合不补零
	trends := make([]model.ChannelTrend, 0, len(allDates))
	for _, date := range allDates {
		trend := model.ChannelTrend{
			Date:     date,
			Channels: make(map[string]model.ChannelMetrics),
		}
		for _, channel := range allChannels {
			var orderAmount, freight float64
			count := 0
			for _, r := range prepared {
				if r.date != date || r.platform != channel {
					continue
				}
				orderAmount += r.orderAmount
				freight += r.cost
				count++
			}
			if count == 0 {
				continue
			}
			trend.Channels[channel] = model.ChannelMetrics{
				FreightRatio: percent(freight, orderAmount),
				OrderAmount:  orderAmount,
				Freight:      freight,
				OrderCount:   count,
			}
		}
		trends = append(trends, trend)
	}

	// 渠道汇总：销售额占比降序
	var totalOrderAmount, totalFreight float64
	for _, r := range prepared {
		totalOrderAmount += r.orderAmount
		totalFreight += r.cost
	}
	summaries := make([]model.ChannelSummary, 0, len(allChannels))
	for _, channel := range allChannels {
		var orderAmount, freight float64
		count := 0
		for _, r := range prepared {
			if r.platform != channel {
				continue
			}
			orderAmount += r.orderAmount
			freight += r.cost
			count++
		}
		summaries = append(summaries, model.ChannelSummary{
			Channel:          channel,
			SalesRatio:       percent(orderAmount, totalOrderAmount),
			TotalOrderAmount: orderAmount,
			TotalFreight:     freight,
			AvgFreightRatio:  percent(freight, orderAmount),
			OrderCount:       count,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SalesRatio > summaries[j].SalesRatio
	})

	// 公斤段分布：每渠道内各公斤段占该渠道总运费的比例
	distributions := make([]model.WeightDistribution, 0, len(allChannels))
	for _, channel := range allChannels {
		var channelFreight float64
		groups := make(map[string][]dashboardRecord)
		for _, r := range prepared {
			if r.platform != channel {
				continue
			}
			channelFreight += r.cost
			groups[r.weightRange] = append(groups[r.weightRange], r)
		}

		dist := model.WeightDistribution{
			Channel: channel,
			Weights: make(map[string]model.WeightMetrics),
		}
		for label, group := range groups {
			var freight float64
			for _, r := range group {
				freight += r.cost
			}
			dist.Weights[label] = model.WeightMetrics{
				Freight:      freight,
				FreightRatio: percent(freight, channelFreight),
				OrderCount:   len(group),
				AvgFreight:   freight / float64(len(group)),
			}
		}
		distributions = append(distributions, dist)
	}

	return &model.DashboardData{
		Summary: model.DashboardSummary{
			TotalOrderAmount:    totalOrderAmount,
			TotalFreight:        totalFreight,
			OverallFreightRatio: percent(totalFreight, totalOrderAmount),
			OrderCount:          len(prepared),
			DateRange:           model.DateRange{Start: allDates[0], End: allDates[len(allDates)-1]},
		},
		ChannelTrends:       trends,
		ChannelSummaries:    summaries,
		WeightDistributions: distributions,
	}
}
