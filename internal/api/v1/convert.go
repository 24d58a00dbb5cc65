package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formvalidator/internal/converter"
	"formvalidator/internal/logger"
)

// ConvertResponse 转换响应
type ConvertResponse struct {
	ID       string                  `json:"id"`
	Filename string                  `json:"filename"`
	Sheets   []converter.SheetResult `json:"sheets"`
	Payload  converter.Payload       `json:"payload"`
}

// readUpload 读取 multipart 中的 file 字段
func (h *Handler) readUpload(c *gin.Context) (*converter.Workbook, int, error) {
	if limit := h.cfg.Server.MaxUploadMB; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d MB limit", h.cfg.Server.MaxUploadMB)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("missing upload file: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	wb, err := converter.Read(fh.Filename, f)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return wb, http.StatusOK, nil
}

// Convert 转换上传的工作簿
// POST /api/convert
func (h *Handler) Convert(c *gin.Context) {
	log := logger.FromGin(c)

	wb, status, err := h.readUpload(c)
	if err != nil {
		log.Warn("upload rejected", zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	res, err := h.coordinator.Convert(c.Request.Context(), wb, h.convertOptions())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, converter.ErrNoSheets) {
			status = http.StatusBadRequest
		}
		log.Error("convert failed", zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ConvertResponse{
		ID:       res.ID,
		Filename: res.Filename,
		Sheets:   res.Sheets,
		Payload:  res.Payload(),
	})
}

// ConvertStream 转换上传的工作簿 (SSE 流式响应)
// POST /api/convert/stream
func (h *Handler) ConvertStream(c *gin.Context) {
	wb, status, err := h.readUpload(c)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	for event := range h.coordinator.Stream(c.Request.Context(), wb, h.convertOptions()) {
		if res, ok := event.Data.(*converter.Result); ok && event.Type == "done" {
			event.Data = ConvertResponse{
				ID:       res.ID,
				Filename: res.Filename,
				Sheets:   res.Sheets,
				Payload:  res.Payload(),
			}
		}
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
