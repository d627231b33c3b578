package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// WebSearchTool 联网搜索工具 对接SearXNG实例的json接口
type WebSearchTool struct {
	baseUrl string
	apiKey  string
	limit   int
}

type WebSearchConfig struct {
	BaseUrl string
	ApiKey  string
	Limit   int
}

type SearchResult struct {
	Title   string `json:"title"`
	Url     string `json:"url"`
	Content string `json:"content"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

func NewWebSearchTool(c *WebSearchConfig) *WebSearchTool {
	if c == nil {
		panic("WebSearchConfig is nil")
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 5
	}
	return &WebSearchTool{baseUrl: c.BaseUrl, apiKey: c.ApiKey, limit: limit}
}

func (w *WebSearchTool) Params() map[string]*schema.ParameterInfo {
	return map[string]*schema.ParameterInfo{
		"query": {
			Desc:     "需要联网搜索的关键词",
			Type:     schema.String,
			Required: true,
		},
		"language": {
			Desc: "搜索结果语言 如zh-CN/en",
			Type: schema.String,
		},
	}
}

func (w *WebSearchTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        "web_search",
		Desc:        "联网搜索最新信息，返回网页标题、链接和摘要",
		ParamsOneOf: schema.NewParamsOneOfByParams(w.Params()),
	}, nil
}

// InvokableRun 执行搜索请求
func (w *WebSearchTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var params map[string]any
	if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
		return "", err
	}
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return "", fmt.Errorf("query is required")
	}
	results, err := w.Search(ctx, query, params)
	if err != nil {
		return "", err
	}
	bytes, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Search 请求搜索接口并截断到limit条
func (w *WebSearchTool) Search(ctx context.Context, query string, params map[string]any) ([]SearchResult, error) {
	queryParams := url.Values{}
	queryParams.Set("q", query)
	queryParams.Set("format", "json")
	if language, ok := params["language"].(string); ok && language != "" {
		queryParams.Set("language", language)
	}
	fullUrl := fmt.Sprintf("%s/search?%s", w.baseUrl, queryParams.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		return nil, err
	}
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}
	client := http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http request failed with status code %d", resp.StatusCode)
	}
	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, err
	}
	if len(searchResp.Results) > w.limit {
		searchResp.Results = searchResp.Results[:w.limit]
	}
	return searchResp.Results, nil
}
