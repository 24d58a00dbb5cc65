package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"formvalidator/internal/config"
	"formvalidator/internal/converter"
	"formvalidator/internal/logger"
	"formvalidator/internal/parser"
)

// Handler V1 API 处理器
type Handler struct {
	cfg         *config.AppConfig
	coordinator *converter.Coordinator
	builder     *parser.RecordBuilder
	version     string
	startedAt   time.Time
}

// NewHandler 创建 V1 API 处理器
func NewHandler(cfg *config.AppConfig, version string) *Handler {
	classifier := cfg.Classifier()
	return &Handler{
		cfg:         cfg,
		coordinator: converter.NewCoordinator(classifier, logger.Log),
		builder:     parser.NewRecordBuilder(classifier),
		version:     version,
		startedAt:   time.Now(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/config", h.GetConfig)

	// 工作簿转换
	router.POST("/convert", h.Convert)
	router.POST("/convert/stream", h.ConvertStream)
	router.POST("/convert/report", h.ConvertReport)

	// 单步调用
	router.POST("/normalize", h.Normalize)
	router.POST("/build", h.Build)
}

func (h *Handler) convertOptions() converter.Options {
	return converter.Options{
		SkipSheets: h.cfg.Convert.SkipSheets,
		Parallel:   h.cfg.Convert.ParallelSheets,
	}
}
