package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/auths"
	"github.com/hurxxxx/open-webui-pilelines/internal/files"
	"github.com/hurxxxx/open-webui-pilelines/internal/knowledges"
	"github.com/hurxxxx/open-webui-pilelines/internal/llms"
	"github.com/hurxxxx/open-webui-pilelines/internal/tools"

	"github.com/mszlu521/thunder/event"
)

type Event struct {
}

func (u *Event) Register() {
	//模块之间不直接import 通过事件总线互调
	authService := auths.NewPublicService()
	event.Register("getUserById", authService.GetUserById)
	llmService := llms.NewPublicService()
	event.Register("getProviderConfig", llmService.GetProviderConfig)
	event.Register("getChatConfig", llmService.GetChatConfig)
	event.Register("getEmbeddingConfig", llmService.GetEmbeddingConfig)
	fileService := files.NewPublicService()
	event.Register("getFileMetasByIds", fileService.GetFileMetasByIds)
	event.Register("createFileMeta", fileService.CreateFileMeta)
	event.Register("updateFileStatus", fileService.UpdateFileStatus)
	toolService := tools.NewPublicService()
	event.Register("webSearch", toolService.WebSearch)
	knowledgeService := knowledges.NewPublicService()
	event.Register("listKnowledgeBases", knowledgeService.ListKnowledgeBases)
	event.Register("getKnowledgeBase", knowledgeService.GetKnowledgeBase)
	event.Register("searchKnowledgeBase", knowledgeService.SearchKnowledgeBase)
}
