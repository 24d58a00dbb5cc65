package parser

import (
	"fmt"
	"strings"

	"formvalidator/internal/model"
)

// columnStep 一次游标移动产生的列映射
type columnStep struct {
	Index     int    // 值列索引
	TermIndex int    // 术语列索引，-1 表示无
	Header    string // 值列列名（即输出字段名）
	Policy    FieldPolicy
	Claimed   bool // false 表示普通列
}

// Width 本步消费的列数
func (s columnStep) Width() int {
	if s.TermIndex >= 0 {
		return 2
	}
	return 1
}

// planColumns 按列头走一遍游标，得到每行通用的列映射
// 列的消费只取决于列头，所以每个 sheet 只需规划一次
func planColumns(headers []string, set FieldPolicySet) ([]columnStep, []Warning) {
	var (
		steps    []columnStep
		warnings []Warning
	)

	cur := newHeaderCursor(headers)
	for !cur.done() {
		idx, header := cur.current()
		step := columnStep{Index: idx, TermIndex: -1, Header: header}

		policy, ok := set.Lookup(header)
		if !ok {
			if strings.Contains(header, TermSourceLabel) {
				warnings = append(warnings, Warning{
					Column:  idx,
					Header:  header,
					Code:    WarnOrphanTermColumn,
					Message: fmt.Sprintf("column %q is not attached to any ontology field", header),
				})
			}
			steps = append(steps, step)
			cur.advance(step.Width())
			continue
		}

		step.Policy = policy
		step.Claimed = true
		if policy.Paired() {
			if next, ok := cur.peek(1); ok && policy.IsTermColumn(next) {
				step.TermIndex = idx + 1
			} else if j := findDetachedTermColumn(headers, idx, header); j >= 0 {
				warnings = append(warnings, Warning{
					Column:  idx,
					Header:  header,
					Code:    WarnTermColumnMissing,
					Message: fmt.Sprintf("column %q is not followed by its term column; %q at column %d is not paired", header, headers[j], j),
				})
			}
		}

		steps = append(steps, step)
		cur.advance(step.Width())
	}

	return steps, warnings
}

// findDetachedTermColumn 查找不相邻的同名术语列
func findDetachedTermColumn(headers []string, idx int, header string) int {
	for j := idx + 2; j < len(headers); j++ {
		h := headers[j]
		if strings.HasPrefix(h, header) && strings.Contains(h, TermSourceLabel) {
			return j
		}
	}
	return -1
}

// cellAt 取单元格，短行补空串
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return CleanCell(row[i])
}

// applyStep 把一步列映射写入记录
func applyStep(rec *model.Record, step columnStep, row []string) {
	value := cellAt(row, step.Index)

	if !step.Claimed {
		rec.Add(step.Header, value)
		return
	}

	trimmed := strings.TrimSpace(value)
	policy := step.Policy

	switch policy.Kind {
	case PolicyPairedList:
		f := rec.Ensure(step.Header, model.FieldTermList)
		if t, ok := pairedTerm(step, row); ok {
			f.Terms = append(f.Terms, t)
		}

	case PolicyPairedObject:
		if t, ok := pairedTerm(step, row); ok {
			f := rec.Ensure(step.Header, model.FieldTermObject)
			f.Object = t
		}

	case PolicyRepeated:
		f := rec.Ensure(step.Header, model.FieldList)
		if trimmed != "" {
			f.List = append(f.List, trimmed)
		}

	case PolicyFirstWins:
		f, exists := rec.Field(step.Header)
		if !exists {
			f = rec.Ensure(step.Header, model.FieldScalar)
			f.Scalar = trimmed
		} else if f.Scalar == "" {
			f.Scalar = trimmed
		}

	case PolicyValueList:
		f := rec.Ensure(step.Header, model.FieldValueList)
		if trimmed != "" {
			f.Values = append(f.Values, model.ValueItem{Value: trimmed})
		}
	}
}

// pairedTerm 成对字段的 {text, term}；无术语列时只取非空的值列
func pairedTerm(step columnStep, row []string) (model.Term, bool) {
	text := strings.TrimSpace(cellAt(row, step.Index))
	if step.TermIndex < 0 {
		if text == "" {
			return model.Term{}, false
		}
		return model.Term{Text: text}, true
	}
	term := strings.TrimSpace(cellAt(row, step.TermIndex))
	if text == "" && term == "" {
		return model.Term{}, false
	}
	return model.Term{Text: text, Term: term}, true
}

// RecordBuilder 行 → 记录构建器
type RecordBuilder struct {
	classifier *SheetClassifier
}

// NewRecordBuilder 创建构建器
func NewRecordBuilder(classifier *SheetClassifier) *RecordBuilder {
	if classifier == nil {
		classifier = DefaultSheetClassifier()
	}
	return &RecordBuilder{classifier: classifier}
}

// Build 按规范化后的列头把每行构建为记录，输出与行数一致
func (b *RecordBuilder) Build(headers []string, rows [][]string, sheetName string) []*model.Record {
	records, _ := b.BuildWithReport(headers, rows, sheetName)
	return records
}

// BuildWithReport 同 Build，并返回列级数据质量提示
func (b *RecordBuilder) BuildWithReport(headers []string, rows [][]string, sheetName string) ([]*model.Record, []Warning) {
	set := PolicySetFor(b.classifier.Classify(sheetName))
	steps, warnings := planColumns(headers, set)

	records := make([]*model.Record, 0, len(rows))
	for _, row := range rows {
		rec := model.NewRecord()
		for _, step := range steps {
			applyStep(rec, step, row)
		}
		records = append(records, rec)
	}
	return records, warnings
}

// BuildRecords 使用默认分类器构建记录
func BuildRecords(headers []string, rows [][]string, sheetName string) []*model.Record {
	return NewRecordBuilder(nil).Build(headers, rows, sheetName)
}

// BuildRecordsWithReport 使用默认分类器构建记录并返回提示
func BuildRecordsWithReport(headers []string, rows [][]string, sheetName string) ([]*model.Record, []Warning) {
	return NewRecordBuilder(nil).BuildWithReport(headers, rows, sheetName)
}
