package parser

import "strings"

// NormalizeHeaders 列头消歧
//
// 输出与输入等长、同序。从左到右依次套用（先命中者生效）：
//  1. 带点后缀（如 "Child Of.1"）或裸 "Term Source ID"，且前面已有输出：
//     取第一个点之前的部分，拼到上一个输出列名后面（空格分隔）
//  2. 下一列与当前列完全相同：整段连续重复列原样输出
//  3. 当前列名已在输出中出现过（不相邻）："{上一个输出}_{当前列名}"
//  4. 其余原样输出
//
// 空列名不参与任何规则。
// Excel 导出重复列时只给第二个及以后的副本加 ".N"，
// 所以 "Term Source ID" 的第一个副本也按规则 1 归属到前一列。
// 前一列不是成对字段时同样改名（如 "Sample Name Term Source ID"），
// 构建时作为孤立术语列给出提示。
func NormalizeHeaders(headers []string) []string {
	out := make([]string, 0, len(headers))
	seen := make(map[string]struct{}, len(headers))
	emit := func(h string) {
		out = append(out, h)
		seen[h] = struct{}{}
	}

	for i := 0; i < len(headers); i++ {
		h := headers[i]

		// 空列名原样保留
		if h == "" {
			emit(h)
			continue
		}

		if len(out) > 0 && (strings.Contains(h, ".") || h == TermSourceLabel) {
			base, _, _ := strings.Cut(h, ".")
			emit(out[len(out)-1] + " " + base)
			continue
		}

		if i+1 < len(headers) && headers[i+1] == h {
			emit(h)
			for i+1 < len(headers) && headers[i+1] == h {
				i++
				emit(h)
			}
			continue
		}

		if _, dup := seen[h]; dup {
			emit(out[len(out)-1] + "_" + h)
			continue
		}

		emit(h)
	}

	return out
}
