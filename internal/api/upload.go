package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tom88115/freight-weight-analyzer/internal/excel"
)

// UploadResponse 上传响应
type UploadResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	RecordsProcessed int    `json:"recordsProcessed"`
	Inserted         int    `json:"inserted"`
	Duplicates       int    `json:"duplicates"`
	SkippedRows      int    `json:"skippedRows"`
}

// Upload 上传 Excel 运费表格并入库
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.fail(c, http.StatusBadRequest, "没有上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.serverError(c, "打开上传文件失败", err)
		return
	}
	defer file.Close()

	started := time.Now()
	result, err := excel.ParseShippingRecords(file, h.scheme)
	if err != nil {
		h.log.WithError(err).WithField("filename", fileHeader.Filename).Error("Excel 解析失败")
		h.fail(c, http.StatusBadRequest, "Excel 文件解析失败: "+err.Error())
		return
	}
	if len(result.Records) == 0 {
		h.fail(c, http.StatusBadRequest, "Excel 文件中没有有效数据")
		return
	}

	// 默认去重，显式传 skipDuplicates=false 时全量插入
	skipDuplicates := c.DefaultPostForm("skipDuplicates", "true") == "true"
	inserted, err := h.store.Insert(result.Records, skipDuplicates)
	if err != nil {
		h.serverError(c, "数据入库失败", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"filename":   fileHeader.Filename,
		"parsed":     len(result.Records),
		"inserted":   len(inserted.Inserted),
		"duplicates": len(inserted.Duplicates),
		"skipped":    result.SkippedRows,
		"elapsed":    time.Since(started).String(),
	}).Info("数据导入完成")

	c.JSON(http.StatusOK, UploadResponse{
		Success:          true,
		Message:          "导入完成",
		RecordsProcessed: len(result.Records),
		Inserted:         len(inserted.Inserted),
		Duplicates:       len(inserted.Duplicates),
		SkippedRows:      result.SkippedRows,
	})
}
