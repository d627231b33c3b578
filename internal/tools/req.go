package tools

import "github.com/hurxxxx/open-webui-pilelines/model"

type CreateToolReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsEnable    bool   `json:"isEnable"`
}

type ListToolsReq struct {
	Name     string         `json:"name" form:"name"`
	Type     model.ToolType `json:"type" form:"type"`
	Page     int            `json:"page" form:"page"`
	PageSize int            `json:"pageSize" form:"pageSize"`
}

type UpdateToolReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TestToolReq struct {
	Params map[string]interface{} `json:"params"`
}

type TestToolResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data"`
}
