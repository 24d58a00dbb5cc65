package converter

import (
	"bytes"
	"encoding/json"
	"time"

	"formvalidator/internal/model"
	"formvalidator/internal/parser"
)

// SheetResult 单个 sheet 的转换结果
type SheetResult struct {
	Name              string                        `json:"name"`
	Kind              model.SheetKind               `json:"kind"`
	Status            model.SheetStatus             `json:"status"`
	Reason            string                        `json:"reason,omitempty"` // 跳过原因
	Recognition       parser.SheetRecognitionResult `json:"recognition"`
	Headers           []string                      `json:"headers"`
	NormalizedHeaders []string                      `json:"normalizedHeaders"`
	Records           []*model.Record               `json:"-"`
	Warnings          []parser.Warning              `json:"warnings,omitempty"`
	RowCount          int                           `json:"rowCount"`
	Duration          time.Duration                 `json:"duration"`
}

// Result 一次上传的转换结果
type Result struct {
	ID              string        `json:"id"`
	Filename        string        `json:"filename"`
	TotalSheets     int           `json:"totalSheets"`
	ConvertedSheets int           `json:"convertedSheets"`
	SkippedSheets   int           `json:"skippedSheets"`
	TotalRows       int           `json:"totalRows"`
	Duration        time.Duration `json:"duration"`
	Sheets          []SheetResult `json:"sheets"`
}

// Payload 校验服务请求体：按 sheet 名组织的记录数组，保持工作簿顺序
func (r *Result) Payload() Payload {
	p := Payload{}
	for _, s := range r.Sheets {
		if s.Status != model.SheetConverted {
			continue
		}
		p = append(p, PayloadSheet{Name: s.Name, Records: s.Records})
	}
	return p
}

// Sheet 按名称查找 sheet 结果
func (r *Result) Sheet(name string) (*SheetResult, bool) {
	for i := range r.Sheets {
		if r.Sheets[i].Name == name {
			return &r.Sheets[i], true
		}
	}
	return nil, false
}

// PayloadSheet 请求体中的一个 sheet
type PayloadSheet struct {
	Name    string
	Records []*model.Record
}

// Payload 有序的 sheet 名 → 记录数组
type Payload []PayloadSheet

// MarshalJSON 输出为 JSON 对象，键顺序与工作簿一致
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		records := s.Records
		if records == nil {
			records = []*model.Record{}
		}
		val, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
