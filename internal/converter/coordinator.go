package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"formvalidator/internal/model"
	"formvalidator/internal/parser"
)

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/sheet_start/sheet_done/sheet_skipped/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`    // 附加数据
	Timestamp time.Time   `json:"timestamp"`
}

// Options 转换选项
type Options struct {
	SkipSheets []string // 不转换的标签页（按 sheet 名规范化后比较）
	Parallel   int      // 并发转换的 sheet 数，<=0 时为 1
	Progress   chan<- ProgressEvent
}

// Coordinator 工作簿转换协调器：表头规范化 + 记录构建
type Coordinator struct {
	recognizer *parser.SheetRecognizer
	builder    *parser.RecordBuilder
	log        *zap.Logger
}

// NewCoordinator 创建协调器
func NewCoordinator(classifier *parser.SheetClassifier, log *zap.Logger) *Coordinator {
	if classifier == nil {
		classifier = parser.DefaultSheetClassifier()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		recognizer: parser.NewSheetRecognizer(classifier),
		builder:    parser.NewRecordBuilder(classifier),
		log:        log,
	}
}

// Convert 转换整个工作簿；sheet 可并发处理，结果顺序与工作簿一致
func (c *Coordinator) Convert(ctx context.Context, wb *Workbook, opts Options) (*Result, error) {
	startTime := time.Now()
	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}

	result := &Result{
		ID:          uuid.NewString(),
		Filename:    wb.Filename,
		TotalSheets: len(wb.Sheets),
		Sheets:      make([]SheetResult, len(wb.Sheets)),
	}
	log := c.log.With(zap.String("conversion_id", result.ID), zap.String("filename", wb.Filename))

	sendProgress(opts.Progress, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("converting %s (%d sheets)", wb.Filename, len(wb.Sheets)),
		Data: map[string]interface{}{
			"id":           result.ID,
			"filename":     wb.Filename,
			"total_sheets": len(wb.Sheets),
		},
		Timestamp: time.Now(),
	})

	skip := make(map[string]struct{}, len(opts.SkipSheets))
	for _, name := range opts.SkipSheets {
		skip[parser.NormalizeSheetName(name)] = struct{}{}
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range wb.Sheets {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.Sheets[i] = c.convertSheet(wb.Sheets[i], skip, opts.Progress)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("conversion aborted", zap.Error(err))
		return nil, fmt.Errorf("conversion aborted: %w", err)
	}

	for _, s := range result.Sheets {
		switch s.Status {
		case model.SheetConverted:
			result.ConvertedSheets++
			result.TotalRows += s.RowCount
		case model.SheetSkipped:
			result.SkippedSheets++
		}
	}
	result.Duration = time.Since(startTime)

	log.Info("workbook converted",
		zap.Int("sheets", result.TotalSheets),
		zap.Int("converted", result.ConvertedSheets),
		zap.Int("skipped", result.SkippedSheets),
		zap.Int("rows", result.TotalRows),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// Stream 异步转换，返回进度通道；最后一个事件为 done（Data 为 *Result）或 error
// 中间事件在通道满时丢弃，结束事件一定送达（除非 ctx 已取消）
func (c *Coordinator) Stream(ctx context.Context, wb *Workbook, opts Options) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)
	opts.Progress = progressChan

	go func() {
		defer close(progressChan)

		result, err := c.Convert(ctx, wb, opts)
		final := ProgressEvent{Type: "done", Message: "conversion finished", Data: result, Timestamp: time.Now()}
		if err != nil {
			final = ProgressEvent{Type: "error", Message: err.Error(), Timestamp: time.Now()}
		}

		select {
		case progressChan <- final:
		case <-ctx.Done():
		}
	}()

	return progressChan
}

// convertSheet 处理单个 sheet
func (c *Coordinator) convertSheet(sheet Sheet, skip map[string]struct{}, progress chan<- ProgressEvent) SheetResult {
	sheetStartTime := time.Now()
	recognition := c.recognizer.Recognize(sheet.Name, sheet.Headers)

	res := SheetResult{
		Name:        sheet.Name,
		Kind:        recognition.Kind,
		Recognition: recognition,
		Headers:     sheet.Headers,
	}

	reason := ""
	switch {
	case isSkipped(skip, sheet.Name):
		reason = "sheet excluded by configuration"
	case len(sheet.Headers) == 0:
		reason = "sheet has no header row"
	case len(sheet.Rows) == 0:
		reason = "sheet has no data rows"
	}
	if reason != "" {
		res.Status = model.SheetSkipped
		res.Reason = reason
		res.Duration = time.Since(sheetStartTime)
		c.log.Debug("sheet skipped", zap.String("sheet", sheet.Name), zap.String("reason", reason))
		sendProgress(progress, ProgressEvent{
			Type:    "sheet_skipped",
			Message: fmt.Sprintf("sheet %q skipped: %s", sheet.Name, reason),
			Data: map[string]string{
				"sheet_name": sheet.Name,
				"reason":     reason,
			},
			Timestamp: time.Now(),
		})
		return res
	}

	sendProgress(progress, ProgressEvent{
		Type:    "sheet_start",
		Message: fmt.Sprintf("converting sheet %q as %s (confidence %.2f)", sheet.Name, recognition.Kind, recognition.Confidence),
		Data: map[string]interface{}{
			"sheet_name": sheet.Name,
			"sheet_kind": recognition.Kind,
			"confidence": recognition.Confidence,
		},
		Timestamp: time.Now(),
	})

	res.NormalizedHeaders = parser.NormalizeHeaders(sheet.Headers)
	res.Records, res.Warnings = c.builder.BuildWithReport(res.NormalizedHeaders, sheet.Rows, sheet.Name)
	res.RowCount = len(res.Records)
	res.Status = model.SheetConverted
	res.Duration = time.Since(sheetStartTime)

	for _, w := range res.Warnings {
		c.log.Warn("column warning",
			zap.String("sheet", sheet.Name),
			zap.Int("column", w.Column),
			zap.String("header", w.Header),
			zap.String("code", string(w.Code)),
		)
	}

	sendProgress(progress, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("sheet %q converted: %d records", sheet.Name, res.RowCount),
		Data: map[string]interface{}{
			"sheet_name": sheet.Name,
			"rows":       res.RowCount,
			"warnings":   len(res.Warnings),
		},
		Timestamp: time.Now(),
	})
	return res
}

func isSkipped(skip map[string]struct{}, name string) bool {
	_, ok := skip[parser.NormalizeSheetName(name)]
	return ok
}

// sendProgress 发送进度事件
func sendProgress(ch chan<- ProgressEvent, event ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
