// Package weightrange 公斤段划分。
//
// 公斤段方案作为配置注入，内置两套：
//   - product: 按产品规格划分（单包/双包/四包/六包猫砂），区间外统一归入"其他"
//   - generic: 通用公斤段，最后一段上界无穷大，正重量必有匹配
//
// 未匹配策略统一为返回方案的兜底标签（product 方案的"其他"；generic 方案
// 因末段无界，正重量不会走到兜底）。
package weightrange

// Bracket 一个左闭右开的重量区间 [Min, Max)
type Bracket struct {
	Min         float64
	Max         float64 // <=0 表示无上界
	Label       string
	Description string
}

// Scheme 公斤段方案：有序区间列表 + 兜底标签
type Scheme struct {
	Name     string
	Brackets []Bracket
	Fallback string // 无区间匹配时返回的标签
}

// ProductScheme 猫砂产品公斤段：
//   - 2kg以内：小件商品
//   - 2-3kg：单包猫砂（2.4-2.6kg含包装）
//   - 4-6kg：双包猫砂（约4.8-5.2kg）
//   - 9-11kg：四包猫砂（约9.6-10.4kg）
//   - 14-16kg：六包猫砂（约14.4-15.6kg）
//   - 其他：不在以上范围的订单
func ProductScheme() *Scheme {
	return &Scheme{
		Name: "product",
		Brackets: []Bracket{
			{Min: 0, Max: 2, Label: "2kg以内", Description: "小件商品"},
			{Min: 2, Max: 3, Label: "2-3kg", Description: "单包猫砂"},
			{Min: 4, Max: 6, Label: "4-6kg", Description: "双包猫砂"},
			{Min: 9, Max: 11, Label: "9-11kg", Description: "四包猫砂"},
			{Min: 14, Max: 16, Label: "14-16kg", Description: "六包猫砂"},
		},
		Fallback: "其他",
	}
}

// GenericScheme 通用公斤段，末段无上界
func GenericScheme() *Scheme {
	return &Scheme{
		Name: "generic",
		Brackets: []Bracket{
			{Min: 0, Max: 1, Label: "0-1kg"},
			{Min: 1, Max: 5, Label: "1-5kg"},
			{Min: 5, Max: 10, Label: "5-10kg"},
			{Min: 10, Max: 20, Label: "10-20kg"},
			{Min: 20, Max: 0, Label: "20kg以上"},
		},
		Fallback: "其他",
	}
}

// SchemeByName 按名称取方案，未知名称回退到 product
func SchemeByName(name string) *Scheme {
	switch name {
	case "generic":
		return GenericScheme()
	default:
		return ProductScheme()
	}
}

// Classify 按声明顺序返回第一个满足 Min <= weight < Max 的区间标签，
// 无匹配时返回兜底标签。不做重量校验，非正重量由上游拒绝。
func (s *Scheme) Classify(weight float64) string {
	for _, b := range s.Brackets {
		if weight < b.Min {
			continue
		}
		if b.Max <= 0 || weight < b.Max {
			return b.Label
		}
	}
	return s.Fallback
}

// AllLabels 返回全部公斤段标签（含兜底），报表按此顺序预置分组
func (s *Scheme) AllLabels() []string {
	labels := make([]string, 0, len(s.Brackets)+1)
	for _, b := range s.Brackets {
		labels = append(labels, b.Label)
	}
	labels = append(labels, s.Fallback)
	return labels
}
