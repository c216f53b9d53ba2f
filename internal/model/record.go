package model

import "time"

// ShippingRecord 运费记录（一条发货/订单明细）
type ShippingRecord struct {
	ID          string    `json:"id"`                    // 唯一标识，导入时自动生成
	OrderNumber string    `json:"orderNumber,omitempty"` // 物流单号/订单号
	Weight      float64   `json:"weight"`                // 重量（公斤）
	Cost        float64   `json:"cost"`                  // 运费成本
	OrderAmount float64   `json:"orderAmount"`           // 订单金额（缺省按 0 处理）
	Destination string    `json:"destination,omitempty"` // 目的地
	Carrier     string    `json:"carrier,omitempty"`     // 承运商
	Platform    string    `json:"platform,omitempty"`    // 平台（渠道）
	Remarks     string    `json:"remarks,omitempty"`     // 备注
	Date        time.Time `json:"date"`                  // 日期（报表统一截断到天）
	WeightRange string    `json:"weightRange"`           // 公斤段标签
}

// DateKey 返回记录日期的 YYYY-MM-DD 字符串，所有分组统计以此为准
func (r *ShippingRecord) DateKey() string {
	return r.Date.Format("2006-01-02")
}

// DedupeKey 去重键：物流单号 + 日期
func (r *ShippingRecord) DedupeKey() string {
	return r.OrderNumber + "_" + r.DateKey()
}
