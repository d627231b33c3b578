package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/hurxxxx/open-webui-pilelines/core/ai/tools"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

type PublicService struct {
	repo repository
}

// WebSearch 对话和过滤器模块通过事件触发联网搜索
func (s *PublicService) WebSearch(e event.Event) (any, error) {
	request := e.Data.(*shared.WebSearchRequest)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	searchTool := tools.FindTool("web_search")
	if searchTool == nil {
		return nil, biz.ErrToolNotExisted
	}
	params, _ := json.Marshal(map[string]string{"query": request.Query})
	raw, err := searchTool.InvokableRun(ctx, string(params))
	if err != nil {
		logs.Errorf("web search error: %v", err)
		return nil, err
	}
	var searchResults []tools.SearchResult
	if err := json.Unmarshal([]byte(raw), &searchResults); err != nil {
		logs.Errorf("web search result unmarshal error: %v", err)
		return nil, err
	}
	results := make([]*shared.WebSearchResult, 0, len(searchResults))
	for _, r := range searchResults {
		results = append(results, &shared.WebSearchResult{
			Title:   r.Title,
			Url:     r.Url,
			Snippet: r.Content,
		})
	}
	return &shared.WebSearchResponse{
		Results: results,
	}, nil
}

func NewPublicService() *PublicService {
	return &PublicService{
		repo: newModels(database.GetPostgresDB().GormDB),
	}
}
