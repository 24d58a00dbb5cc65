package model

// SheetKind 工作表模板类别（决定字段策略）
type SheetKind string

const (
	SheetKindSample     SheetKind = "sample"     // 样本模板
	SheetKindExperiment SheetKind = "experiment" // 实验（assay）模板
	SheetKindAnalysis   SheetKind = "analysis"   // 分析归档
)

// SheetStatus 单个 sheet 的转换状态
type SheetStatus string

const (
	SheetConverted SheetStatus = "converted"
	SheetSkipped   SheetStatus = "skipped"
)
