// Package excel 运费表格的解析与导出。
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

// 列名同义词表，兼容手工模板与仓储系统导出的两种表头
var columnSynonyms = map[string][]string{
	"weight":      {"重量", "重量(kg)", "计算重量", "订单商品重量", "weight", "Weight"},
	"cost":        {"运费", "费用", "cost", "Cost"},
	"date":        {"日期", "出库单时间", "date", "Date"},
	"orderNumber": {"订单号", "物流单号", "内部订单号", "orderNumber"},
	"destination": {"目的地", "destination"},
	"province":    {"系统收货省份"},
	"city":        {"系统收货城市"},
	"carrier":     {"承运商", "物流公司", "carrier"},
	"platform":    {"平台", "platform"},
	"orderAmount": {"订单金额", "orderAmount"},
	"weightRange": {"公斤段", "weightRange"},
	"remarks":     {"备注", "remarks"},
	"shop":        {"店铺"},
	"orderType":   {"订单类型"},
}

// ParseResult 解析结果
type ParseResult struct {
	Records     []model.ShippingRecord
	SkippedRows int // 重量或运费非法被丢弃的行数
}

// columnIndex 表头名 → 字段 → 列下标
func columnIndex(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}
	index := make(map[string]int)
	for field, names := range columnSynonyms {
		for _, name := range names {
			if i, ok := byName[name]; ok {
				index[field] = i
				break
			}
		}
	}
	return index
}

func cell(row []string, index map[string]int, field string) string {
	i, ok := index[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellFloat(row []string, index map[string]int, field string) float64 {
	v, err := strconv.ParseFloat(cell(row, index, field), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDate 解析日期单元格。仓储系统导出的表格里日期列可能是
// Excel 序列数，按 1900 日期系统换算。
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006/01/02",
		"2006年01月02日",
		"01-02-06",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseShippingRecords 解析上传的 Excel（取第一个工作表，首行为表头）。
// 重量或运费缺失/非正的行直接丢弃；公斤段列缺失时按重量现算。
func ParseShippingRecords(reader io.Reader, scheme *weightrange.Scheme) (*ParseResult, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return &ParseResult{Records: []model.ShippingRecord{}}, nil
	}

	index := columnIndex(rows[0])
	result := &ParseResult{Records: []model.ShippingRecord{}}

	for _, row := range rows[1:] {
		weight := cellFloat(row, index, "weight")
		cost := cellFloat(row, index, "cost")
		if weight <= 0 || cost <= 0 {
			result.SkippedRows++
			continue
		}

		date, ok := parseDate(cell(row, index, "date"))
		if !ok {
			result.SkippedRows++
			continue
		}

		destination := cell(row, index, "destination")
		if destination == "" {
			province := cell(row, index, "province")
			city := cell(row, index, "city")
			switch {
			case province != "" && city != "":
				destination = province + "-" + city
			case province != "":
				destination = province
			case city != "":
				destination = city
			}
		}

		remarks := cell(row, index, "remarks")
		if remarks == "" {
			var parts []string
			if shop := cell(row, index, "shop"); shop != "" {
				parts = append(parts, "店铺:"+shop)
			}
			if orderType := cell(row, index, "orderType"); orderType != "" {
				parts = append(parts, "类型:"+orderType)
			}
			remarks = strings.Join(parts, " | ")
		}

		orderAmount := cellFloat(row, index, "orderAmount")
		if orderAmount < 0 {
			orderAmount = 0
		}

		weightRange := cell(row, index, "weightRange")
		if weightRange == "" {
			weightRange = scheme.Classify(weight)
		}

		result.Records = append(result.Records, model.ShippingRecord{
			OrderNumber: cell(row, index, "orderNumber"),
			Weight:      weight,
			Cost:        cost,
			OrderAmount: orderAmount,
			Destination: destination,
			Carrier:     cell(row, index, "carrier"),
			Platform:    cell(row, index, "platform"),
			Remarks:     remarks,
			Date:        date,
			WeightRange: weightRange,
		})
	}
	return result, nil
}
