package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeColumnName 清理列名：去除首尾空白、换行、制表符，压缩连续空格
func NormalizeColumnName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = spaceRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NormalizeSheetName sheet 名比较用的形式：小写、下划线视为空格
func NormalizeSheetName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", " ")
	return NormalizeColumnName(name)
}

// CleanCell 缺失值（NaN / null）统一为空串
func CleanCell(s string) string {
	switch strings.TrimSpace(s) {
	case "NaN", "nan", "null", "NULL":
		return ""
	}
	return s
}

// CellString 任意单元格值转字符串，nil 与 NaN 视为空
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return CleanCell(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return CellString(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return CleanCell(string(x))
	}
	if s, ok := v.(interface{ String() string }); ok {
		return CleanCell(s.String())
	}
	return ""
}

// RowsFromValues 将任意类型的行转换为字符串行
func RowsFromValues(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, vs := range values {
		row := make([]string, len(vs))
		for j, v := range vs {
			row[j] = CellString(v)
		}
		rows[i] = row
	}
	return rows
}
