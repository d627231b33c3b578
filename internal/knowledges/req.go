package knowledges

import (
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type createKnowledgeBaseReq struct {
	Name                   string                `json:"name" binding:"required"`
	Description            string                `json:"description"`
	Visibility             model.Visibility      `json:"visibility"`
	ChatModelName          string                `json:"chatModelName"`
	ChatModelProvider      string                `json:"chatModelProvider"`
	EmbeddingModelName     string                `json:"embeddingModelName" binding:"required"`
	EmbeddingModelProvider string                `json:"embeddingModelProvider" binding:"required"`
	StorageType            model.StorageType     `json:"storageType"`
	Tags                   model.StringArrayJSON `json:"tags"`
}

type updateKnowledgeBaseReq struct {
	Name                   string           `json:"name"`
	Description            string           `json:"description"`
	Visibility             model.Visibility `json:"visibility"`
	ChatModelName          string           `json:"chatModelName"`
	ChatModelProvider      string           `json:"chatModelProvider"`
	EmbeddingModelName     string           `json:"embeddingModelName"`
	EmbeddingModelProvider string           `json:"embeddingModelProvider"`
}

type listReq struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Search   string `form:"search"`
}

type searchParams struct {
	Query string `json:"query" binding:"required"`
}
