package model

import (
	"github.com/google/uuid"
)

type ToolType string

const (
	SystemToolType ToolType = "system"
)

// Tool 系统工具的登记信息 实际执行逻辑在 core/ai/tools 注册表中
type Tool struct {
	BaseModel
	CreatorID        uuid.UUID    `json:"creatorId" gorm:"column:creator_id;type:uuid;not null;index"`
	Name             string       `json:"name" gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
	Description      string       `json:"description" gorm:"column:description;type:text"`
	ToolType         ToolType     `json:"toolType" gorm:"column:tool_type;type:varchar(20);not null;default:'system'"`
	IsEnable         bool         `json:"isEnable" gorm:"column:is_enable;type:boolean;not null;default:true"`
	ParametersSchema JSON         `json:"parametersSchema" gorm:"column:parameters_schema;type:jsonb"`
	Status           ConfigStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'enabled'"`
}

func (*Tool) TableName() string {
	return "tools"
}
