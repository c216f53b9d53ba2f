package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tom88115/freight-weight-analyzer/internal/model"
)

const exportSheet = "运费数据"

var exportHeader = []string{
	"订单号", "重量(kg)", "运费", "订单金额", "公斤段",
	"目的地", "承运商", "平台", "日期", "备注",
}

// BuildWorkbook 把记录写成一张工作表，表头与导入模板一致，
// 导出的文件可直接再次导入。调用方负责 Close。
func BuildWorkbook(records []model.ShippingRecord) (*excelize.File, error) {
	file := excelize.NewFile()

	index, err := file.GetSheetIndex("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to locate default sheet: %w", err)
	}
	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	file.SetActiveSheet(index)

	if err := file.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.OrderNumber,
			r.Weight,
			r.Cost,
			r.OrderAmount,
			r.WeightRange,
			r.Destination,
			r.Carrier,
			r.Platform,
			r.Date.Format("2006-01-02"),
			r.Remarks,
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := file.SetSheetRow(exportSheet, cellRef, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return file, nil
}
