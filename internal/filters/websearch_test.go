package filters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hurxxxx/open-webui-pilelines/shared"
)

func newWebSearchFilter(content string, err error) *WebSearchFilter {
	f := NewWebSearchFilter()
	f.buildModel = fakeBuildModel(content, err)
	return f
}

func setSearchStub(resp *shared.WebSearchResponse, err error) {
	stubMu.Lock()
	defer stubMu.Unlock()
	stubSearchResp = resp
	stubSearchErr = err
}

func TestWebSearch(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)
	setSearchStub(&shared.WebSearchResponse{
		Results: []*shared.WebSearchResult{
			{Title: "今日金价", Url: "https://example.com/gold", Snippet: "最新黄金价格"},
			{Title: "金价走势", Url: "https://example.com/trend", Snippet: "近一个月走势"},
		},
	}, nil)

	f := newWebSearchFilter(`{"web_search": true}`, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("今天金价多少"), rec.emitter(), testUser())

	if len(body.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(body.Files))
	}
	attachment := body.Files[0]
	if attachment.Type != shared.AttachmentTypeWebSearch {
		t.Errorf("type = %s, want web_search", attachment.Type)
	}
	if len(attachment.Results) != 2 {
		t.Errorf("results = %d, want 2", len(attachment.Results))
	}
	last := rec.last()
	if last == nil || !last.Data.Done || !strings.Contains(last.Data.Description, "2 results") {
		t.Errorf("last status = %+v", last)
	}
}

func TestWebSearchNotNeeded(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)

	f := newWebSearchFilter(`{"web_search": false}`, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("解释下goroutine"), rec.emitter(), testUser())

	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %d, want 0", len(rec.events))
	}
}

func TestWebSearchLooseAnswer(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)
	setSearchStub(&shared.WebSearchResponse{
		Results: []*shared.WebSearchResult{
			{Title: "news", Url: "https://example.com/news"},
		},
	}, nil)

	//字符串形式的yes也要按true处理
	f := newWebSearchFilter("```json\n{'web_search': 'yes'}\n```", nil)
	body := f.Inlet(context.Background(), testBody("最近有什么新闻"), nil, testUser())

	if len(body.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(body.Files))
	}
}

func TestWebSearchUnparsableAnswer(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)

	//解析不出布尔值时当不需要联网
	f := newWebSearchFilter("I am not sure about that.", nil)
	body := f.Inlet(context.Background(), testBody("嗯"), nil, testUser())

	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
}

func TestWebSearchNilResponse(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)
	//处理器返回nil指针 要当没有结果处理而不是崩掉
	setSearchStub(nil, nil)

	f := newWebSearchFilter(`{"web_search": true}`, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("今天天气怎么样"), rec.emitter(), testUser())

	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
	last := rec.last()
	if last == nil || last.Data.Description != "No web results found." || !last.Data.Done {
		t.Errorf("last status = %+v", last)
	}
}

func TestWebSearchHandlerError(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)
	setSearchStub(nil, errors.New("searxng unreachable"))

	f := newWebSearchFilter(`{"web_search": true}`, nil)
	rec := &statusRecorder{}
	in := testBody("现在几点了")
	body := f.Inlet(context.Background(), in, rec.emitter(), testUser())

	if body != in {
		t.Fatalf("body not passed through on error")
	}
	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
	last := rec.last()
	if last == nil || !strings.HasPrefix(last.Data.Description, "Error occurred while processing the request") {
		t.Errorf("last status = %+v", last)
	}
}
