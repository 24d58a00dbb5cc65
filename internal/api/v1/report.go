package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formvalidator/internal/converter"
	"formvalidator/internal/exporter"
	"formvalidator/internal/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ConvertReport 转换上传的工作簿并返回报告 Excel
// POST /api/convert/report?preview=true
func (h *Handler) ConvertReport(c *gin.Context) {
	log := logger.FromGin(c)

	wb, status, err := h.readUpload(c)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	res, err := h.coordinator.Convert(c.Request.Context(), wb, h.convertOptions())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, converter.ErrNoSheets) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	f, err := exporter.Export(res, exporter.ExportOptions{Preview: c.Query("preview") == "true"})
	if err != nil {
		log.Error("report export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export report failed"})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error("report write failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export report failed"})
		return
	}

	c.Header("Content-Disposition", reportContentDisposition(res.Filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// reportContentDisposition 下载文件名：<原文件名>-report.xlsx
func reportContentDisposition(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "workbook"
	}
	name := base + "-report.xlsx"
	return fmt.Sprintf("attachment; filename=\"report.xlsx\"; filename*=UTF-8''%s", url.PathEscape(name))
}
