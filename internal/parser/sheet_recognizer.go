package parser

import (
	"formvalidator/internal/model"
)

// DefaultAnalysisSheets 分析归档类 sheet 名
var DefaultAnalysisSheets = []string{"faang", "ena", "eva"}

// DefaultExperimentSheets 实验（assay）模板 sheet 名
var DefaultExperimentSheets = []string{
	"chip-seq input dna",
	"chip-seq dna-binding proteins",
	"rna-seq",
	"wgs",
	"hi-c",
	"atac-seq",
	"dnase-seq",
	"bs-seq",
	"em-seq",
	"cage-seq",
	"scrna-seq",
}

// SheetClassifier 按 sheet 名分类
type SheetClassifier struct {
	analysis   map[string]struct{}
	experiment map[string]struct{}
}

// NewSheetClassifier 创建分类器，名称按 NormalizeSheetName 比较
func NewSheetClassifier(analysis, experiment []string) *SheetClassifier {
	return &SheetClassifier{
		analysis:   nameSet(analysis),
		experiment: nameSet(experiment),
	}
}

// DefaultSheetClassifier 默认分类器
func DefaultSheetClassifier() *SheetClassifier {
	return NewSheetClassifier(DefaultAnalysisSheets, DefaultExperimentSheets)
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[NormalizeSheetName(n)] = struct{}{}
	}
	return set
}

// Classify 识别 sheet 属于 analysis / experiment / sample
func (c *SheetClassifier) Classify(sheetName string) Classification {
	name := NormalizeSheetName(sheetName)
	_, analysis := c.analysis[name]
	_, experiment := c.experiment[name]
	return Classification{IsAnalysis: analysis, IsExperiment: experiment}
}

// SheetRecognizer Sheet 识别器：名称决定类别，列头给出吻合度
type SheetRecognizer struct {
	classifier *SheetClassifier
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(classifier *SheetClassifier) *SheetRecognizer {
	if classifier == nil {
		classifier = DefaultSheetClassifier()
	}
	return &SheetRecognizer{classifier: classifier}
}

// 各类模板的关键列（任一别名命中即算）
var keyHeaders = map[model.SheetKind][][]string{
	model.SheetKindSample: {
		{"Sample Name"},
		{"Material"},
		{"Organism"},
	},
	model.SheetKindExperiment: {
		{"Sample Descriptor"},
		{"Experiment Target", "Chip Target", "chip target"},
		{"Assay Type"},
	},
	model.SheetKindAnalysis: {
		{"File Names"},
		{"Analysis Type"},
		{"Project"},
	},
}

// Recognize 识别 Sheet 类型
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	kind := r.classifier.Classify(sheetName).Kind()

	present := make(map[string]struct{}, len(columnNames))
	for _, col := range columnNames {
		present[NormalizeColumnName(col)] = struct{}{}
	}

	keys := keyHeaders[kind]
	matchCount := 0
	var missing []string
	for _, aliases := range keys {
		found := false
		for _, alias := range aliases {
			if _, ok := present[alias]; ok {
				found = true
				break
			}
		}
		if found {
			matchCount++
		} else {
			missing = append(missing, aliases[0])
		}
	}

	confidence := 0.0
	if len(keys) > 0 {
		confidence = float64(matchCount) / float64(len(keys))
	}

	return SheetRecognitionResult{
		SheetName:      sheetName,
		Kind:           kind,
		Confidence:     confidence,
		MissingHeaders: missing,
	}
}
