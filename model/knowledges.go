package model

import (
	"github.com/google/uuid"
)

type StorageType string

const (
	StorageTypeElasticSearch StorageType = "es"
	StorageTypeMilvus        StorageType = "milvus"
)

type KnowledgeBaseStatus string

const (
	KnowledgeBaseStatusActive   KnowledgeBaseStatus = "active"
	KnowledgeBaseStatusDisabled KnowledgeBaseStatus = "disabled"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// KnowledgeBase 知识库 自动选择filter只依赖 name/description/file_ids
type KnowledgeBase struct {
	BaseModel
	CreatorID              uuid.UUID  `json:"creatorId" gorm:"column:creator_id;type:uuid;not null;index"`
	Name                   string     `json:"name" gorm:"column:name;type:varchar(255);not null;index"`
	Description            string     `json:"description" gorm:"column:description;type:text"`
	Visibility             Visibility `json:"visibility" gorm:"column:visibility;type:varchar(20);not null;default:'private'"`
	ChatModelName          string     `json:"chatModelName" gorm:"column:chat_model_name;type:varchar(255)"`
	ChatModelProvider      string     `json:"chatModelProvider" gorm:"column:chat_model_provider;type:varchar(50)"`
	EmbeddingModelName     string     `json:"embeddingModelName" gorm:"column:embedding_model_name;type:varchar(255)"`
	EmbeddingModelProvider string     `json:"embeddingModelProvider" gorm:"column:embedding_model_provider;type:varchar(50)"`
	StorageType            StorageType `json:"storageType" gorm:"column:storage_type;type:varchar(50);not null;default:'es'"`
	// 知识库关联的文件id集合 附加到聊天请求时按这个集合去files模块批量查询元数据
	FileIDs StringArrayJSON     `json:"fileIds" gorm:"column:file_ids;type:jsonb"`
	Tags    StringArrayJSON     `json:"tags" gorm:"column:tags;type:jsonb"`
	Status  KnowledgeBaseStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'active'"`
}

func (*KnowledgeBase) TableName() string {
	return "knowledge_bases"
}

type ChunkStatus string

const (
	ChunkStatusPending  ChunkStatus = "pending"
	ChunkStatusEmbedded ChunkStatus = "embedded"
	ChunkStatusDeleted  ChunkStatus = "deleted"
)

// FileChunk 文件切分后的片段 PG中存父分段用于展示，子分段进向量库
type FileChunk struct {
	BaseModel
	FileID          uuid.UUID `json:"fileId" gorm:"column:file_id;type:uuid;not null;index"`
	KnowledgeBaseID uuid.UUID `json:"knowledgeBaseId" gorm:"column:kb_id;type:uuid;not null;index"`
	ChunkIndex      int       `json:"chunkIndex" gorm:"column:chunk_index;type:integer;not null"`
	Content         string    `json:"content" gorm:"column:content;type:text;not null"`
	TokenCount      int       `json:"tokenCount" gorm:"column:token_count;type:integer"`
	// 元数据会同步写入向量库的 metadata 字段，用于 filter 查询
	MetaInfo JSON        `json:"metaInfo" gorm:"column:meta_info;type:jsonb"`
	Status   ChunkStatus `gorm:"column:status;type:varchar(20);not null;default:'pending'"`
}

func (*FileChunk) TableName() string {
	return "file_chunks"
}
