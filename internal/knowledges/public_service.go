package knowledges

import (
	"context"
	"time"

	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

// PublicService 知识库对其他模块暴露的事件能力
type PublicService struct {
	service *service
}

func NewPublicService() *PublicService {
	return &PublicService{
		service: newService(),
	}
}

// ListKnowledgeBases 给filter提供候选目录 只返回选择需要的字段
func (p *PublicService) ListKnowledgeBases(e event.Event) (any, error) {
	params := e.Data.(*shared.ListKnowledgeBasesRequest)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	kbList, err := p.service.repo.listReadableKnowledgeBases(ctx, params.UserId)
	if err != nil {
		logs.Errorf("list readable knowledge bases error: %v", err)
		return nil, err
	}
	infos := make([]*shared.KnowledgeBaseInfo, 0, len(kbList))
	for _, kb := range kbList {
		infos = append(infos, &shared.KnowledgeBaseInfo{
			Id:          kb.ID,
			Name:        kb.Name,
			Description: kb.Description,
			FileIds:     kb.FileIDs,
		})
	}
	return infos, nil
}

func (p *PublicService) GetKnowledgeBase(e event.Event) (any, error) {
	params := e.Data.(*shared.GetKnowledgeBaseRequest)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	kb, err := p.service.getReadableKnowledgeBase(ctx, params.UserId, params.KnowledgeBaseId)
	if err != nil {
		return nil, err
	}
	return &shared.KnowledgeBaseInfo{
		Id:          kb.ID,
		Name:        kb.Name,
		Description: kb.Description,
		FileIds:     kb.FileIDs,
	}, nil
}

func (p *PublicService) SearchKnowledgeBase(e event.Event) (any, error) {
	params := e.Data.(*shared.SearchKnowledgeBaseRequest)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	resp, err := p.service.searchKnowledgeBase(ctx, params.UserId, params.KnowledgeBaseId, searchParams{
		Query: params.Query,
	})
	if err != nil {
		return nil, err
	}
	results := make([]*shared.SearchKnowledgeBaseResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, &shared.SearchKnowledgeBaseResult{
			Content: r.Content,
		})
	}
	return &shared.SearchKnowledgeBaseResponse{
		Results: results,
	}, nil
}
