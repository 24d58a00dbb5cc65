package exporter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"formvalidator/internal/converter"
	"formvalidator/internal/model"
)

const (
	// SummarySheet 汇总表名
	SummarySheet = "summary"
	// WarningsSheet 列头提示表名
	WarningsSheet = "warnings"

	maxSheetNameLen = 31
)

var (
	summaryHeaders = []interface{}{"Sheet", "Kind", "Status", "Reason", "Rows", "Warnings", "Confidence", "Missing Headers"}
	warningHeaders = []interface{}{"Sheet", "Column", "Header", "Code", "Message"}
)

// ExportOptions 导出选项
type ExportOptions struct {
	// Preview 为每个已转换的 sheet 输出一张扁平化的记录预览表
	Preview  bool
	Progress func(ProgressEvent)
}

// Export 把转换结果写成报告工作簿
func Export(res *converter.Result, opts ExportOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillReport(f, res, opts); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillReport(f *excelize.File, res *converter.Result, opts ExportOptions) error {
	progress := newProgressReporter(opts.Progress)
	progress.report(5, "写入汇总表")
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := fillSummarySheet(f, res); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	progress.report(15, "写入列头提示")
	if _, err := f.NewSheet(WarningsSheet); err != nil {
		return err
	}
	if err := fillWarningsSheet(f, res); err != nil {
		return fmt.Errorf("warnings sheet: %w", err)
	}

	if opts.Preview {
		used := map[string]bool{
			strings.ToLower(SummarySheet):  true,
			strings.ToLower(WarningsSheet): true,
		}
		total := len(res.Sheets)
		for i, s := range res.Sheets {
			if s.Status != model.SheetConverted {
				continue
			}
			name := previewSheetName(s.Name, used)
			progress.report(20+75*i/max(total, 1), "写入预览 "+s.Name)
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
			if err := fillPreviewSheet(f, name, s.Records); err != nil {
				return fmt.Errorf("preview sheet %s: %w", s.Name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	progress.report(100, "完成")
	return nil
}

func fillSummarySheet(f *excelize.File, res *converter.Result) error {
	if err := writeRow(f, SummarySheet, 1, summaryHeaders); err != nil {
		return err
	}
	for i, s := range res.Sheets {
		row := []interface{}{
			s.Name,
			string(s.Kind),
			string(s.Status),
			s.Reason,
			s.RowCount,
			len(s.Warnings),
			s.Recognition.Confidence,
			strings.Join(s.Recognition.MissingHeaders, "; "),
		}
		if err := writeRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func fillWarningsSheet(f *excelize.File, res *converter.Result) error {
	if err := writeRow(f, WarningsSheet, 1, warningHeaders); err != nil {
		return err
	}
	r := 2
	for _, s := range res.Sheets {
		for _, w := range s.Warnings {
			colName, err := excelize.ColumnNumberToName(w.Column + 1)
			if err != nil {
				return err
			}
			if err := writeRow(f, WarningsSheet, r, []interface{}{s.Name, colName, w.Header, string(w.Code), w.Message}); err != nil {
				return err
			}
			r++
		}
	}
	return nil
}

// fillPreviewSheet 记录扁平化：列为所有记录字段的并集（按首次出现顺序）
func fillPreviewSheet(f *excelize.File, sheet string, records []*model.Record) error {
	var keys []string
	seen := map[string]bool{}
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	header := make([]interface{}, len(keys))
	for i, k := range keys {
		header[i] = k
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		row := make([]interface{}, len(keys))
		for j, k := range keys {
			if field, ok := rec.Field(k); ok {
				row[j] = FormatField(field)
			}
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// FormatField 字段的单元格文本：列表以 "; " 连接，术语写作 "text [term]"
func FormatField(field *model.Field) string {
	switch field.Kind {
	case model.FieldList:
		return strings.Join(field.List, "; ")
	case model.FieldTermList:
		parts := make([]string, len(field.Terms))
		for i, t := range field.Terms {
			parts[i] = formatTerm(t)
		}
		return strings.Join(parts, "; ")
	case model.FieldTermObject:
		return formatTerm(field.Object)
	case model.FieldValueList:
		parts := make([]string, len(field.Values))
		for i, v := range field.Values {
			parts[i] = v.Value
		}
		return strings.Join(parts, "; ")
	}
	return field.Scalar
}

func formatTerm(t model.Term) string {
	if t.Term == "" {
		return t.Text
	}
	return fmt.Sprintf("%s [%s]", t.Text, t.Term)
}

// previewSheetName Excel 表名：去掉非法字符，最长 31 个字符，不区分大小写去重
func previewSheetName(name string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	base = strings.Trim(base, "'")
	if base == "" {
		base = "sheet"
	}

	candidate := truncateRunes(base, maxSheetNameLen)
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
