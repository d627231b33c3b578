package utils

import (
	"strings"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	content := "# 主标题\n\n## 二级标题\n内容"
	if title := ExtractTitle(content, "#"); title != "主标题" {
		t.Errorf("h1 = %s, want 主标题", title)
	}
	if title := ExtractTitle(content, "##"); title != "二级标题" {
		t.Errorf("h2 = %s, want 二级标题", title)
	}
	if title := ExtractTitle("没有标题的内容", "#"); title != "" {
		t.Errorf("title = %s, want empty", title)
	}
}

func TestSplitByHeading(t *testing.T) {
	content := "前言部分\n\n## 第一节\n内容一\n\n## 第二节\n内容二"
	chunks := SplitByHeading(content, "##")
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if chunks[0] != "前言部分" {
		t.Errorf("chunks[0] = %s", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "## 第一节") {
		t.Errorf("chunks[1] = %s", chunks[1])
	}
}

func TestSplitByWindow(t *testing.T) {
	content := strings.Repeat("滚滚长江东逝水", 100)
	chunks := SplitByWindow(content, 200, 50)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want >= 2", len(chunks))
	}
	//相邻块要有重叠
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	if string(first[len(first)-50:]) != string(second[:50]) {
		t.Errorf("overlap mismatch")
	}
	//短内容不切分
	if got := SplitByWindow("短内容", 200, 50); len(got) != 1 {
		t.Errorf("short content chunks = %d, want 1", len(got))
	}
}
