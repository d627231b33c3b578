package knowledges

import (
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type ListResp struct {
	KnowledgeBases []*model.KnowledgeBase `json:"knowledgeBases"`
	Total          int64                  `json:"total"`
}

type KnowledgeBaseResponse struct {
	Id                     uuid.UUID             `json:"id"`
	Name                   string                `json:"name"`
	Description            string                `json:"description"`
	Visibility             model.Visibility      `json:"visibility"`
	ChatModelName          string                `json:"chatModelName"`
	ChatModelProvider      string                `json:"chatModelProvider"`
	EmbeddingModelName     string                `json:"embeddingModelName"`
	EmbeddingModelProvider string                `json:"embeddingModelProvider"`
	StorageType            model.StorageType     `json:"storageType"`
	FileIds                model.StringArrayJSON `json:"fileIds"`
	Tags                   model.StringArrayJSON `json:"tags"`
	ChunkCount             int64                 `json:"chunkCount"`
	CreatorId              uuid.UUID             `json:"creatorId"`
	CreatedAt              int64                 `json:"createdAt"`
	UpdatedAt              int64                 `json:"updatedAt"`
}

type SearchResult struct {
	Content  string     `json:"content"`
	Id       uuid.UUID  `json:"id"`
	FileId   uuid.UUID  `json:"fileId"`
	Metadata model.JSON `json:"metadata"`
	Position int        `json:"position"`
	Score    float64    `json:"score"`
}

type SearchResponse struct {
	KbId    uuid.UUID       `json:"kbId"`
	Query   string          `json:"query"`
	Results []*SearchResult `json:"results"`
	Took    int64           `json:"took"`
	Total   int64           `json:"total"`
}
