package files

import "github.com/hurxxxx/open-webui-pilelines/model"

type ListFilesResponse struct {
	Total int64             `json:"total"`
	Files []*model.FileMeta `json:"files"`
}
