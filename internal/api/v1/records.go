package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formvalidator/internal/model"
	"formvalidator/internal/parser"
)

// NormalizeRequest 列头规范化请求
type NormalizeRequest struct {
	Headers []string `json:"headers"`
}

// Normalize 规范化列头
// POST /api/normalize
func (h *Handler) Normalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"headers": parser.NormalizeHeaders(req.Headers)})
}

// BuildRequest 记录构建请求
type BuildRequest struct {
	Headers    []string `json:"headers"`
	Rows       [][]any  `json:"rows"` // 单元格可为字符串、数字或 null
	SheetName  string   `json:"sheetName"`
	Normalized bool     `json:"normalized"` // headers 已规范化时跳过规范化
}

// BuildResponse 记录构建响应
type BuildResponse struct {
	Headers  []string         `json:"headers"`
	Records  []*model.Record  `json:"records"`
	Warnings []parser.Warning `json:"warnings"`
}

// Build 按列头构建记录
// POST /api/build
func (h *Handler) Build(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	headers := req.Headers
	if !req.Normalized {
		headers = parser.NormalizeHeaders(headers)
	}
	records, warnings := h.builder.BuildWithReport(headers, parser.RowsFromValues(req.Rows), req.SheetName)
	if warnings == nil {
		warnings = []parser.Warning{}
	}

	c.JSON(http.StatusOK, BuildResponse{
		Headers:  headers,
		Records:  records,
		Warnings: warnings,
	})
}
