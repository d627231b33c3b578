package utils

import (
	"fmt"
	"regexp"
	"strings"
)

func ExtractTitle(content string, mark string) string {
	re := regexp.MustCompile(fmt.Sprintf(`(?m)^%s\s+(.*)`, mark))
	match := re.FindStringSubmatch(content)
	if len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// SplitByHeading 按md标题层级切分 第一个标题前的内容单独成块
func SplitByHeading(content string, mark string) []string {
	re := regexp.MustCompile(fmt.Sprintf(`(?m)^%s\s+`, mark))
	indices := re.FindAllStringIndex(content, -1)
	if len(indices) == 0 {
		return []string{content}
	}
	var chunks []string
	if indices[0][0] > 0 {
		preHeaderContent := strings.TrimSpace(content[:indices[0][0]])
		if preHeaderContent != "" {
			chunks = append(chunks, preHeaderContent)
		}
	}
	for i := 0; i < len(indices); i++ {
		start, end := indices[i][0], len(content)
		if i+1 < len(indices) {
			end = indices[i+1][0]
		}
		chunks = append(chunks, strings.TrimSpace(content[start:end]))
	}
	return chunks
}

func SplitTextByLength(content string, limit int, overlap int) []string {
	if len(content) <= limit {
		return []string{content}
	}
	return SplitByWindow(content, limit, overlap)
}

// SplitByWindow 固定窗口切分 overlap是相邻块的重叠长度
func SplitByWindow(content string, maxSize int, overlap int) []string {
	var chunks []string
	runes := []rune(content)
	if len(runes) <= maxSize {
		return []string{content}
	}
	step := maxSize - overlap
	for i := 0; i < len(runes); i += step {
		end := i + maxSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
