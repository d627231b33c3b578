package model

import (
	"github.com/google/uuid"
)

type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusFailed     FileStatus = "failed"
)

// FileMeta 存储上传文件的元数据 知识库通过 file_ids 引用
type FileMeta struct {
	BaseModel
	CreatorID uuid.UUID `json:"creatorId" gorm:"column:creator_id;type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	FileType  string    `json:"fileType" gorm:"column:file_type;type:varchar(50);not null"`
	Size      int64     `json:"size" gorm:"column:size;type:bigint;not null;default:0"`
	// S3/OSS 上的路径 key 目前本地存储直接存文件名
	StorageKey string     `json:"storageKey" gorm:"column:storage_key;type:varchar(512);not null"`
	FileHash   string     `json:"fileHash" gorm:"column:file_hash;type:varchar(64);index"`
	TokenCount int        `json:"tokenCount" gorm:"column:token_count;type:integer;default:0"`
	Status     FileStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	ErrorMessage string   `json:"errorMessage" gorm:"column:error_message;type:text"`
	MetaInfo   JSON       `json:"metaInfo" gorm:"column:meta_info;type:jsonb"`
}

func (*FileMeta) TableName() string {
	return "file_metas"
}
