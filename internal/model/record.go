package model

import (
	"bytes"
	"encoding/json"
)

// FieldKind 字段形态（构建期的标签）
type FieldKind int

const (
	FieldScalar     FieldKind = iota // 单值
	FieldList                        // 字符串列表
	FieldTermList                    // {text, term} 列表
	FieldTermObject                  // 单个 {text, term}
	FieldValueList                   // {value} 列表
)

func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldList:
		return "list"
	case FieldTermList:
		return "term_list"
	case FieldTermObject:
		return "term_object"
	case FieldValueList:
		return "value_list"
	}
	return "unknown"
}

// Term 文本值 + 本体术语
type Term struct {
	Text string `json:"text"`
	Term string `json:"term"`
}

// ValueItem analysis 表中以 {value} 包装的值
type ValueItem struct {
	Value string `json:"value"`
}

// Field 记录中的单个字段
// 构建过程中保留形态标签，输出 JSON 时才折叠为最终结构
type Field struct {
	Name   string
	Kind   FieldKind
	Scalar string
	List   []string
	Terms  []Term
	Object Term
	Values []ValueItem
}

// Promote 单值提升为列表（已是列表时不变）
func (f *Field) Promote() {
	if f.Kind != FieldScalar {
		return
	}
	f.Kind = FieldList
	f.List = []string{f.Scalar}
	f.Scalar = ""
}

// JSONValue 字段输出形态
func (f *Field) JSONValue() any {
	switch f.Kind {
	case FieldList:
		if f.List == nil {
			return []string{}
		}
		return f.List
	case FieldTermList:
		if f.Terms == nil {
			return []Term{}
		}
		return f.Terms
	case FieldTermObject:
		return f.Object
	case FieldValueList:
		if f.Values == nil {
			return []ValueItem{}
		}
		return f.Values
	default:
		return f.Scalar
	}
}

// Record 一行数据构建出的记录，字段按首次出现顺序保存
type Record struct {
	fields []*Field
	index  map[string]int
}

// NewRecord 创建空记录
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Len 字段数
func (r *Record) Len() int {
	return len(r.fields)
}

// Keys 字段名（首次出现顺序）
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// Field 按名称查找字段
func (r *Record) Field(name string) (*Field, bool) {
	idx, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[idx], true
}

// Ensure 获取字段，不存在时按给定形态创建
func (r *Record) Ensure(name string, kind FieldKind) *Field {
	if f, ok := r.Field(name); ok {
		return f
	}
	f := &Field{Name: name, Kind: kind}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, f)
	return f
}

// Add 写入普通列；同名列再次出现时提升为列表并追加
func (r *Record) Add(name, value string) {
	if f, ok := r.Field(name); ok {
		f.Promote()
		f.List = append(f.List, value)
		return
	}
	f := r.Ensure(name, FieldScalar)
	f.Scalar = value
}

// Get 字段的输出值
func (r *Record) Get(name string) (any, bool) {
	f, ok := r.Field(name)
	if !ok {
		return nil, false
	}
	return f.JSONValue(), true
}

// MarshalJSON 按字段顺序输出 JSON 对象
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.JSONValue())
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
