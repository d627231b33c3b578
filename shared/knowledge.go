package shared

import (
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type GetKnowledgeBaseRequest struct {
	UserId          uuid.UUID `json:"userId"`
	KnowledgeBaseId uuid.UUID `json:"knowledgeBaseId"`
}

// ListKnowledgeBasesRequest 按用户查可读的知识库 自己创建的加公开的
type ListKnowledgeBasesRequest struct {
	UserId uuid.UUID `json:"userId"`
}

type KnowledgeBaseInfo struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FileIds     []string  `json:"fileIds"`
}

type SearchKnowledgeBaseRequest struct {
	UserId          uuid.UUID `json:"userId"`
	KnowledgeBaseId uuid.UUID `json:"knowledgeBaseId"`
	Query           string    `json:"query"`
}

type SearchKnowledgeBaseResponse struct {
	Results []*SearchKnowledgeBaseResult `json:"results"`
}

type SearchKnowledgeBaseResult struct {
	Content string `json:"content"`
}

type GetFileMetasRequest struct {
	FileIds []string `json:"fileIds"`
}

type GetFileMetasResponse struct {
	Files []*model.FileMeta `json:"files"`
}
