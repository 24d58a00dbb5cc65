package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Service: "formvalidator",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// ConfigResponse 当前生效的转换配置
type ConfigResponse struct {
	AnalysisSheets   []string `json:"analysisSheets"`
	ExperimentSheets []string `json:"experimentSheets"`
	SkipSheets       []string `json:"skipSheets"`
	ParallelSheets   int      `json:"parallelSheets"`
	MaxUploadMB      int64    `json:"maxUploadMB"`
}

// GetConfig 获取配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		AnalysisSheets:   h.cfg.Sheets.Analysis,
		ExperimentSheets: h.cfg.Sheets.Experiment,
		SkipSheets:       h.cfg.Convert.SkipSheets,
		ParallelSheets:   h.cfg.Convert.ParallelSheets,
		MaxUploadMB:      h.cfg.Server.MaxUploadMB,
	})
}
