package knowledges

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mszlu521/thunder/errs"
	"github.com/mszlu521/thunder/logs"
	"github.com/mszlu521/thunder/req"
	"github.com/mszlu521/thunder/res"
)

type Handler struct {
	service *service
}

func NewHandler() *Handler {
	return &Handler{
		service: newService(),
	}
}

func (h *Handler) CreateKnowledgeBase(c *gin.Context) {
	var params createKnowledgeBaseReq
	if err := req.JsonParam(c, &params); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	kb, err := h.service.createKnowledgeBase(c.Request.Context(), userId, params)
	if err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, kb)
}

func (h *Handler) ListKnowledgeBases(c *gin.Context) {
	var params listReq
	if err := req.QueryParam(c, &params); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	resp, err := h.service.listKnowledgeBases(c.Request.Context(), userId, params)
	if err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, resp)
}

func (h *Handler) GetKnowledgeBase(c *gin.Context) {
	var id uuid.UUID
	if err := req.Path(c, "id", &id); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	resp, err := h.service.getKnowledgeBase(c.Request.Context(), userId, id)
	if err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, resp)
}

func (h *Handler) UpdateKnowledgeBase(c *gin.Context) {
	var id uuid.UUID
	if err := req.Path(c, "id", &id); err != nil {
		return
	}
	var params updateKnowledgeBaseReq
	if err := req.JsonParam(c, &params); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	kb, err := h.service.updateKnowledgeBase(c.Request.Context(), userId, id, params)
	if err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, kb)
}

func (h *Handler) DeleteKnowledgeBase(c *gin.Context) {
	var id uuid.UUID
	if err := req.Path(c, "id", &id); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	if err := h.service.deleteKnowledgeBase(c.Request.Context(), userId, id); err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, nil)
}

func (h *Handler) UploadFile(c *gin.Context) {
	var id uuid.UUID
	if err := req.Path(c, "id", &id); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		logs.Errorf("get form file error: %v", err)
		res.Error(c, errs.ErrParam)
		return
	}
	fm, err := h.service.uploadFile(c.Request.Context(), userId, id, file)
	if err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, fm)
}

func (h *Handler) RemoveFile(c *gin.Context) {
	var id uuid.UUID
	if err := req.Path(c, "id", &id); err != nil {
		return
	}
	var fileId uuid.UUID
	if err := req.Path(c, "fileId", &fileId); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	if err := h.service.removeFile(c.Request.Context(), userId, id, fileId); err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, nil)
}

func (h *Handler) SearchKnowledgeBase(c *gin.Context) {
	var id uuid.UUID
	if err := req.Path(c, "id", &id); err != nil {
		return
	}
	var params searchParams
	if err := req.JsonParam(c, &params); err != nil {
		return
	}
	userId, ok := req.GetUserIdUUID(c)
	if !ok {
		return
	}
	//向量检索加embedding调用会比较慢 去掉写超时
	rc := http.NewResponseController(c.Writer)
	_ = rc.SetWriteDeadline(time.Time{})
	resp, err := h.service.searchKnowledgeBase(c.Request.Context(), userId, id, params)
	if err != nil {
		res.Error(c, err)
		return
	}
	res.Success(c, resp)
}
