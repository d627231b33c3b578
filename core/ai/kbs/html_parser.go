package kbs

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
)

const (
	MetaKeyTitle   = "_title"
	MetaKeyDesc    = "_description"
	MetaKeyLang    = "_language"
	MetaKeyCharset = "_charset"
	MetaKeySource  = "_source"
)

var _ parser.Parser = (*Parser)(nil)

type HtmlConfig struct {
	// goquery选择器 默认取body 也可以传#id只取某个容器
	Selector *string
}

var BodySelector = "body"

func NewHtmlParser(ctx context.Context, conf *HtmlConfig) (*Parser, error) {
	if conf == nil {
		conf = &HtmlConfig{}
	}
	return &Parser{conf: conf}, nil
}

type Parser struct {
	conf *HtmlConfig
}

func (p *Parser) Parse(ctx context.Context, reader io.Reader, opts ...parser.Option) ([]*schema.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, err
	}

	option := parser.GetCommonOptions(&parser.Options{}, opts...)

	meta := p.getMetaData(doc)
	meta[MetaKeySource] = option.URI
	for k, v := range option.ExtraMeta {
		meta[k] = v
	}

	selector := BodySelector
	if p.conf.Selector != nil {
		selector = *p.conf.Selector
	}
	htmlContent, err := doc.Find(selector).Html()
	if err != nil {
		return nil, err
	}

	//UGCPolicy保留h1-h6/p/strong/a/ul/ol/li/table这些语义标签
	//剔除script/style/iframe和所有on*事件属性
	policy := bluemonday.UGCPolicy()
	sanitized := policy.Sanitize(htmlContent)

	document := &schema.Document{
		Content:  strings.TrimSpace(sanitized),
		MetaData: meta,
	}
	return []*schema.Document{document}, nil
}

// getMetaData 提取标题描述语言编码
func (p *Parser) getMetaData(doc *goquery.Document) map[string]any {
	meta := map[string]any{}
	if t := doc.Find("title").Text(); t != "" {
		meta[MetaKeyTitle] = t
	}
	if desc := doc.Find("meta[name=description]").AttrOr("content", ""); desc != "" {
		meta[MetaKeyDesc] = desc
	}
	if language := doc.Find("html").AttrOr("lang", ""); language != "" {
		meta[MetaKeyLang] = language
	}
	if c := doc.Find("meta[charset]").AttrOr("charset", ""); c != "" {
		meta[MetaKeyCharset] = c
	}
	return meta
}
