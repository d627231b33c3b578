package kbs

import (
	"context"

	"github.com/cloudwego/eino-ext/components/document/parser/docx"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/mszlu521/thunder/einos/components/document/parser/epub"
)

// ParserFor 按文件类型给出配置好的解析器 未识别的类型按纯文本处理
func ParserFor(ctx context.Context, fileType FileType) (parser.Parser, error) {
	switch fileType {
	case Docx:
		//正文之外把表格页眉页脚也解析出来 分段时按来源打标
		return docx.NewDocxParser(ctx, &docx.Config{
			ToSections:     true,
			IncludeTables:  true,
			IncludeFooters: true,
			IncludeHeaders: true,
		})
	case PDF:
		//不按分页 获取全部内容
		return pdf.NewPDFParser(ctx, &pdf.Config{
			ToPages: false,
		})
	case Html:
		return NewHtmlParser(ctx, &HtmlConfig{
			Selector: &BodySelector,
		})
	case Epub:
		return epub.NewParser(ctx, &epub.Config{
			StripHTML: true,
		})
	default:
		return parser.TextParser{}, nil
	}
}
