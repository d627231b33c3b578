package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

// 模型返回的json经常混着解释文字、md代码块标签、单引号甚至裸key
// 这里做宽松提取: 直接解析 -> 引号归一化重试 -> 截取括号区间再试
// 全部失败返回 nil,false 由调用方降级处理 不向上抛错误

var (
	bareKeyRe     = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_-]*)(\s*:)`)
	firstObjectRe = regexp.MustCompile(`(?s)\{.*?\}`)
)

// StripCodeFence 去掉md代码块标签
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// NormalizeQuotes 单引号换成双引号 裸key补上双引号
func NormalizeQuotes(content string) string {
	content = strings.ReplaceAll(content, "'", `"`)
	return bareKeyRe.ReplaceAllString(content, `$1"$2"$3`)
}

func tryUnmarshal(content string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	}
	return nil, false
}

// ExtractLooseJSON 从自由文本中提取json对象或数组
func ExtractLooseJSON(content string) (any, bool) {
	content = StripCodeFence(content)
	if content == "" {
		return nil, false
	}
	if v, ok := tryUnmarshal(content); ok {
		return v, true
	}
	normalized := NormalizeQuotes(content)
	if v, ok := tryUnmarshal(normalized); ok {
		return v, true
	}
	// 截取第一个{到最后一个}的区间 兼容嵌套对象
	for _, candidate := range braceCandidates(normalized) {
		if v, ok := tryUnmarshal(candidate); ok {
			return v, true
		}
	}
	return nil, false
}

func braceCandidates(content string) []string {
	var candidates []string
	if start := strings.IndexAny(content, "[{"); start >= 0 {
		closer := "}"
		if content[start] == '[' {
			closer = "]"
		}
		if end := strings.LastIndex(content, closer); end > start {
			candidates = append(candidates, content[start:end+1])
		}
	}
	// 嵌套截取失败时退回最小的{...}匹配
	if m := firstObjectRe.FindString(content); m != "" {
		candidates = append(candidates, m)
	}
	return candidates
}

// ExtractLooseBool 提取布尔判断 "true"/"yes"这类字符串也按true处理
func ExtractLooseBool(content string) bool {
	content = StripCodeFence(content)
	if v, ok := ExtractLooseJSON(content); ok {
		if m, ok := v.(map[string]any); ok {
			for _, key := range []string{"web_search", "search", "result", "answer"} {
				if raw, exists := m[key]; exists {
					return coerceBool(raw)
				}
			}
			return false
		}
	}
	return coerceBool(content)
}

func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.Trim(strings.TrimSpace(t), `"'.`)) {
		case "true", "yes", "y", "1":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}
