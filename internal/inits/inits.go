package inits

import (
	"github.com/hurxxxx/open-webui-pilelines/core/ai/tools"
	"github.com/hurxxxx/open-webui-pilelines/internal/router"

	"github.com/mszlu521/thunder/config"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/server"
	"github.com/mszlu521/thunder/tools/jwt"
)

func Init(s *server.Server, conf *config.Config) {
	//初始化数据库
	database.InitPostgres(conf.DB.Postgres)
	//初始化redis
	database.InitRedis(conf.DB.Redis)
	//初始化jwt
	jwt.Init(conf.Jwt.GetSecret())
	//注册系统工具
	registerTools()
	s.RegisterRouters(
		&router.Event{},
		&router.AuthRouter{},
		&router.LLMRouter{},
		&router.ToolRouter{},
		&router.FileRouter{},
		&router.KnowledgeBaseRouter{},
		&router.ChatRouter{},
	)
}

func registerTools() {
	tools.RegisterSystemTools(
		//searxng实例地址 联网搜索走它
		tools.NewWebSearchTool(&tools.WebSearchConfig{
			BaseUrl: "http://localhost:8080",
			Limit:   5,
		}),
	)
}
