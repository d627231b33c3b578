package chats

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mszlu521/thunder/logs"
	"github.com/mszlu521/thunder/req"
)

type Handler struct {
	service *service
}

func NewHandler() *Handler {
	return &Handler{
		service: newService(),
	}
}

func (h *Handler) ChatMessage(c *gin.Context) {
	var messageReq ChatMessageReq
	if err := req.JsonParam(c, &messageReq); err != nil {
		return
	}
	userID, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	//长连接 去掉写超时
	rc := http.NewResponseController(c.Writer)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logs.Warnf("SetWriteDeadline error: %v", err)
	}
	//SSE的响应，所以需要设置SSE的响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	//这里我们用一个可以取消的context
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	//调用大模型 我们需要放在协程处理，所以这里用channel
	datachan, errchan := h.service.chatMessage(ctx, userID, messageReq)
	//创建一个心跳 这里是防止一些防火墙拦截 导致连接中断
	heartbeat := time.NewTicker(time.Second * 5)
	defer heartbeat.Stop()
	for {
		select {
		case <-ctx.Done():
			logs.Warnf("context done, 客户端断开连接")
			return
		case <-heartbeat.C:
			//心跳发一个冒号开头的消息 sse会当成注释忽略
			_, err := c.Writer.Write([]byte(": keep-alive\n\n"))
			if err != nil {
				logs.Warnf("write heartbeat error: %v", err)
				cancel()
				return
			}
			c.Writer.Flush()
		case data, ok := <-datachan:
			if !ok {
				//channel关闭代表消息结束 按SSE规范发[DONE]
				_, err := c.Writer.Write([]byte("data: [DONE]\n\n"))
				if err != nil {
					logs.Warnf("write done error: %v", err)
				}
				c.Writer.Flush()
				return
			}
			//data是json格式 前端统一按message事件处理
			_, err := c.Writer.Write([]byte("data: " + data + "\n\n"))
			if err != nil {
				logs.Errorf("write data error: %v", err)
				cancel()
				return
			}
			c.Writer.Flush()
		case err, ok := <-errchan:
			if !ok {
				//error的结束不处理 交给datachan处理
				continue
			}
			if err != nil {
				_, err := c.Writer.Write([]byte("data: [ERROR]" + err.Error() + "\n\n"))
				if err != nil {
					logs.Errorf("write error error: %v", err)
					cancel()
					return
				}
				c.Writer.Flush()
				return
			}
		}
	}
}
