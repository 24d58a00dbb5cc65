package parser

import "formvalidator/internal/model"

// TermSourceLabel 本体术语列的列名
const TermSourceLabel = "Term Source ID"

// Classification Sheet 分类结果（由 sheet 名推断）
type Classification struct {
	IsAnalysis   bool
	IsExperiment bool
}

// Kind 分类对应的模板类别，analysis 优先
func (c Classification) Kind() model.SheetKind {
	switch {
	case c.IsAnalysis:
		return model.SheetKindAnalysis
	case c.IsExperiment:
		return model.SheetKindExperiment
	default:
		return model.SheetKindSample
	}
}

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName      string          `json:"sheetName"`
	Kind           model.SheetKind `json:"kind"`
	Confidence     float64         `json:"confidence"` // 列头与模板的吻合度 0-1
	MissingHeaders []string        `json:"missingHeaders,omitempty"`
}

// WarningCode 数据质量提示类别
type WarningCode string

const (
	WarnTermColumnMissing WarningCode = "term_column_missing"
	WarnOrphanTermColumn  WarningCode = "orphan_term_column"
)

// Warning 列级别的数据质量提示（不影响构建结果）
type Warning struct {
	Column  int         `json:"column"`
	Header  string      `json:"header"`
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
