package kbs

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/document/parser"
)

func TestFromExtension(t *testing.T) {
	cases := map[string]FileType{
		".md":   Markdown,
		"PDF":   PDF,
		".docx": Docx,
		".htm":  Html,
		".epub": Epub,
		".xyz":  Text,
	}
	for ext, want := range cases {
		if got := FromExtension(ext); got != want {
			t.Errorf("FromExtension(%s) = %s, want %s", ext, got, want)
		}
	}
}

func TestParserForUnknownType(t *testing.T) {
	p, err := ParserFor(context.Background(), Unknown)
	if err != nil {
		t.Fatalf("ParserFor error: %v", err)
	}
	//未识别的类型兜底为纯文本解析
	if _, ok := p.(parser.TextParser); !ok {
		t.Errorf("parser = %T, want parser.TextParser", p)
	}
}
