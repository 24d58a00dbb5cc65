package parser

import (
	"strings"

	"formvalidator/internal/model"
)

// PolicyKind 字段策略类别
type PolicyKind int

const (
	PolicyPairedList   PolicyKind = iota // 值列 + 可选术语列 → {text, term} 列表
	PolicyPairedObject                   // 值列 + 可选术语列 → 单个 {text, term}
	PolicyRepeated                       // 非空值累积为列表
	PolicyFirstWins                      // 单值，首个非空值生效
	PolicyValueList                      // 非空值以 {value} 累积为列表
)

// FieldPolicy 单个字段的映射规则
type FieldPolicy struct {
	Names []string // 列名（含别名，精确匹配）
	Kind  PolicyKind
	// LooseTerm 下一列只要含 "Term" 即视为术语列
	LooseTerm bool
}

// Matches 列名是否归本策略处理
func (p FieldPolicy) Matches(header string) bool {
	header = strings.TrimSpace(header)
	for _, name := range p.Names {
		if header == name {
			return true
		}
	}
	return false
}

// Paired 是否为值 + 术语成对列
func (p FieldPolicy) Paired() bool {
	return p.Kind == PolicyPairedList || p.Kind == PolicyPairedObject
}

// IsTermColumn 判断紧随其后的列是否为本字段的术语列
func (p FieldPolicy) IsTermColumn(header string) bool {
	if strings.Contains(header, TermSourceLabel) {
		return true
	}
	return p.LooseTerm && strings.Contains(header, "Term")
}

// FieldKind 策略产出的字段形态
func (p FieldPolicy) FieldKind() model.FieldKind {
	switch p.Kind {
	case PolicyPairedList:
		return model.FieldTermList
	case PolicyPairedObject:
		return model.FieldTermObject
	case PolicyRepeated:
		return model.FieldList
	case PolicyValueList:
		return model.FieldValueList
	default:
		return model.FieldScalar
	}
}

// FieldPolicySet 某一类模板的全部字段策略
type FieldPolicySet struct {
	Kind     model.SheetKind
	Policies []FieldPolicy
}

// Lookup 查找列名对应的策略
func (s FieldPolicySet) Lookup(header string) (FieldPolicy, bool) {
	for _, p := range s.Policies {
		if p.Matches(header) {
			return p, true
		}
	}
	return FieldPolicy{}, false
}

// 所有模板通用的策略
var commonPolicies = []FieldPolicy{
	{Names: []string{"Health Status"}, Kind: PolicyPairedList},
	{Names: []string{"Cell Type"}, Kind: PolicyPairedList},
	{Names: []string{"Chip Target", "chip target"}, Kind: PolicyPairedObject, LooseTerm: true},
	{Names: []string{"Experiment Target"}, Kind: PolicyPairedObject, LooseTerm: true},
	{Names: []string{"Child Of"}, Kind: PolicyRepeated},
	{Names: []string{"Specimen Picture URL"}, Kind: PolicyRepeated},
	{Names: []string{"Derived From"}, Kind: PolicyRepeated},
}

// experiment / analysis 模板中按列表处理、sample 模板中按普通列处理的字段
var archiveListFields = []string{
	"Secondary Project",
	"File Names",
	"File Types",
	"Checksum Methods",
	"Checksums",
	"Samples",
	"Experiments",
	"Runs",
}

// analysis 模板中以 {value} 包装的字段
var analysisValueFields = []string{
	"experiment type",
	"platform",
}

func repeatedPolicies(names []string, kind PolicyKind) []FieldPolicy {
	out := make([]FieldPolicy, len(names))
	for i, name := range names {
		out[i] = FieldPolicy{Names: []string{name}, Kind: kind}
	}
	return out
}

func buildPolicySet(kind model.SheetKind, extra ...[]FieldPolicy) FieldPolicySet {
	policies := append([]FieldPolicy(nil), commonPolicies...)
	for _, e := range extra {
		policies = append(policies, e...)
	}
	return FieldPolicySet{Kind: kind, Policies: policies}
}

var (
	samplePolicySet = buildPolicySet(model.SheetKindSample,
		[]FieldPolicy{{Names: []string{"Secondary Project"}, Kind: PolicyFirstWins}},
	)
	experimentPolicySet = buildPolicySet(model.SheetKindExperiment,
		repeatedPolicies(archiveListFields, PolicyRepeated),
	)
	analysisPolicySet = buildPolicySet(model.SheetKindAnalysis,
		repeatedPolicies(archiveListFields, PolicyRepeated),
		repeatedPolicies(analysisValueFields, PolicyValueList),
	)
)

// PolicySetFor 按 sheet 分类选择策略表
func PolicySetFor(c Classification) FieldPolicySet {
	switch c.Kind() {
	case model.SheetKindAnalysis:
		return analysisPolicySet
	case model.SheetKindExperiment:
		return experimentPolicySet
	default:
		return samplePolicySet
	}
}
