package knowledges

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/hurxxxx/open-webui-pilelines/common/utils"
	"github.com/hurxxxx/open-webui-pilelines/core/ai/kbs"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/mszlu521/thunder/ai/einos"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/errs"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
	"gorm.io/gorm"
)

type service struct {
	repo         repository
	esClient     *elasticsearch.Client
	milvusClient client.Client
}

func (s *service) createKnowledgeBase(ctx context.Context, userId uuid.UUID, req createKnowledgeBaseReq) (any, error) {
	storageType := req.StorageType
	if storageType == "" {
		storageType = model.StorageTypeElasticSearch
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityPrivate
	}
	//建库前确认向量模型的厂商已经接入 否则后续上传文件必然失败
	trigger, err := event.Trigger("getProviderConfig", &shared.GetProviderConfigsRequest{
		LLMType:   model.LLMTypeEmbedding,
		Provider:  req.EmbeddingModelProvider,
		ModelName: req.EmbeddingModelName,
	})
	if err != nil {
		logs.Errorf("get provider config error: %v", err)
		return nil, errs.DBError
	}
	if pc, ok := trigger.(*model.ProviderConfig); !ok || pc == nil {
		return nil, biz.ErrProviderConfigNotFound
	}
	kb := model.KnowledgeBase{
		BaseModel: model.BaseModel{
			ID: uuid.New(),
		},
		CreatorID:              userId,
		Name:                   req.Name,
		Description:            req.Description,
		Visibility:             visibility,
		ChatModelName:          req.ChatModelName,
		ChatModelProvider:      req.ChatModelProvider,
		EmbeddingModelName:     req.EmbeddingModelName,
		EmbeddingModelProvider: req.EmbeddingModelProvider,
		StorageType:            storageType,
		FileIDs:                model.StringArrayJSON{},
		Tags:                   req.Tags,
		Status:                 model.KnowledgeBaseStatusActive,
	}
	err = s.repo.createKnowledgeBase(ctx, &kb)
	if err != nil {
		logs.Errorf("create knowledge base error: %v", err)
		return nil, errs.DBError
	}
	return &kb, nil
}

func (s *service) listKnowledgeBases(ctx context.Context, userId uuid.UUID, params listReq) (*ListResp, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	size := params.PageSize
	if size <= 0 {
		size = 10
	}
	filter := KnowledgeBaseFilter{
		Search: params.Search,
		Limit:  size,
		Offset: (page - 1) * size,
	}
	kbList, total, err := s.repo.listKnowledgeBases(ctx, userId, filter)
	if err != nil {
		logs.Errorf("list knowledge base error: %v", err)
		return nil, errs.DBError
	}
	return &ListResp{
		KnowledgeBases: kbList,
		Total:          total,
	}, nil
}

// getReadableKnowledgeBase 创建者和公开知识库都可读 其余返回不存在
func (s *service) getReadableKnowledgeBase(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*model.KnowledgeBase, error) {
	kb, err := s.repo.getKnowledgeBase(ctx, id)
	if err != nil {
		logs.Errorf("get knowledge base error: %v", err)
		return nil, errs.DBError
	}
	if kb == nil {
		return nil, biz.ErrKnowledgeBaseNotFound
	}
	if kb.CreatorID != userId && kb.Visibility != model.VisibilityPublic {
		return nil, biz.ErrKnowledgeBaseNotFound
	}
	return kb, nil
}

func (s *service) getKnowledgeBase(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*KnowledgeBaseResponse, error) {
	kb, err := s.getReadableKnowledgeBase(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	chunkCount, err := s.repo.countKnowledgeBaseChunks(ctx, kb.ID)
	if err != nil {
		logs.Errorf("count knowledge base chunks error: %v", err)
		return nil, errs.DBError
	}
	return &KnowledgeBaseResponse{
		Id:                     kb.ID,
		Name:                   kb.Name,
		Description:            kb.Description,
		Visibility:             kb.Visibility,
		EmbeddingModelName:     kb.EmbeddingModelName,
		EmbeddingModelProvider: kb.EmbeddingModelProvider,
		ChatModelName:          kb.ChatModelName,
		ChatModelProvider:      kb.ChatModelProvider,
		StorageType:            kb.StorageType,
		FileIds:                kb.FileIDs,
		Tags:                   kb.Tags,
		ChunkCount:             chunkCount,
		CreatorId:              kb.CreatorID,
		CreatedAt:              kb.CreatedAt.Unix(),
		UpdatedAt:              kb.UpdatedAt.Unix(),
	}, nil
}

func (s *service) updateKnowledgeBase(ctx context.Context, userId uuid.UUID, id uuid.UUID, req updateKnowledgeBaseReq) (any, error) {
	kb, err := s.repo.getKnowledgeBase(ctx, id)
	if err != nil {
		logs.Errorf("get knowledge base error: %v", err)
		return nil, errs.DBError
	}
	if kb == nil || kb.CreatorID != userId {
		return nil, biz.ErrKnowledgeBaseNotFound
	}
	if req.Name != "" {
		kb.Name = req.Name
	}
	if req.Description != "" {
		kb.Description = req.Description
	}
	if req.Visibility != "" {
		kb.Visibility = req.Visibility
	}
	if req.EmbeddingModelName != "" {
		kb.EmbeddingModelName = req.EmbeddingModelName
	}
	if req.EmbeddingModelProvider != "" {
		kb.EmbeddingModelProvider = req.EmbeddingModelProvider
	}
	if req.ChatModelName != "" {
		kb.ChatModelName = req.ChatModelName
	}
	if req.ChatModelProvider != "" {
		kb.ChatModelProvider = req.ChatModelProvider
	}
	err = s.repo.updateKnowledgeBase(ctx, nil, kb)
	if err != nil {
		logs.Errorf("update knowledge base error: %v", err)
		return nil, errs.DBError
	}
	return kb, nil
}

func (s *service) deleteKnowledgeBase(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	kb, err := s.repo.getKnowledgeBase(ctx, id)
	if err != nil {
		logs.Errorf("get knowledge base error: %v", err)
		return errs.DBError
	}
	if kb == nil || kb.CreatorID != userId {
		return biz.ErrKnowledgeBaseNotFound
	}
	err = s.repo.deleteKnowledgeBase(ctx, kb.ID)
	if err != nil {
		logs.Errorf("delete knowledge base error: %v", err)
		return errs.DBError
	}
	return nil
}

func (s *service) uploadFile(ctx context.Context, userId uuid.UUID, kbId uuid.UUID, uploadFile *multipart.FileHeader) (any, error) {
	//只有创建者能往知识库里传文件
	kb, err := s.repo.getKnowledgeBase(ctx, kbId)
	if err != nil {
		logs.Errorf("get knowledge base error: %v", err)
		return nil, errs.DBError
	}
	if kb == nil || kb.CreatorID != userId {
		return nil, biz.ErrKnowledgeBaseNotFound
	}
	ext := strings.ToLower(filepath.Ext(uploadFile.Filename))
	fileType := kbs.FromExtension(ext)
	fileParser, err := kbs.ParserFor(ctx, fileType)
	if err != nil {
		logs.Errorf("new parser error: %v", err)
		return nil, biz.FileLoadError
	}
	loader, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{
		Parser: fileParser,
	})
	if err != nil {
		logs.Errorf("new file loader error: %v", err)
		return nil, biz.FileLoadError
	}
	src, err := uploadFile.Open()
	if err != nil {
		logs.Errorf("open file error: %v", err)
		return nil, biz.FileLoadError
	}
	defer src.Close()
	tempFile, err := s.createTempFileFromUploadFile(src)
	if err != nil {
		logs.Errorf("create temp file error: %v", err)
		return nil, biz.FileLoadError
	}
	defer os.Remove(tempFile.Name())
	//正常应该上传到云存储 这里用本地临时文件读取内容
	docs, err := loader.Load(ctx, document.Source{
		URI: tempFile.Name(),
	})
	if err != nil {
		logs.Errorf("load file error: %v", err)
		return nil, biz.FileLoadError
	}
	//文件元数据由files模块管理 通过事件创建
	fm := &model.FileMeta{
		BaseModel: model.BaseModel{
			ID: uuid.New(),
		},
		CreatorID:  userId,
		Name:       uploadFile.Filename,
		FileType:   ext,
		Size:       uploadFile.Size,
		StorageKey: uploadFile.Filename,
		Status:     model.FileStatusPending,
	}
	if _, err := event.Trigger("createFileMeta", fm); err != nil {
		logs.Errorf("create file meta error: %v", err)
		return nil, errs.DBError
	}
	//切分+向量化+索引的过程比较长 放入协程处理
	go func() {
		ctx := context.Background()
		s.updateFileStatus(fm, model.FileStatusProcessing, "")
		if err := s.processFileAndVectorAndStore(ctx, fm, docs, kb); err != nil {
			logs.Errorf("process file error: %v", err)
			s.updateFileStatus(fm, model.FileStatusFailed, err.Error())
			return
		}
		//处理成功后把文件id挂到知识库上
		if err := s.appendFileToKnowledgeBase(ctx, kb.ID, fm.ID); err != nil {
			logs.Errorf("append file to knowledge base error: %v", err)
			s.updateFileStatus(fm, model.FileStatusFailed, err.Error())
			return
		}
		s.updateFileStatus(fm, model.FileStatusCompleted, "")
	}()
	return fm, nil
}

func (s *service) updateFileStatus(fm *model.FileMeta, status model.FileStatus, errMsg string) {
	fm.Status = status
	fm.ErrorMessage = errMsg
	if _, err := event.Trigger("updateFileStatus", fm); err != nil {
		logs.Errorf("update file status error: %v", err)
	}
}

func (s *service) appendFileToKnowledgeBase(ctx context.Context, kbId uuid.UUID, fileId uuid.UUID) error {
	return s.repo.transaction(ctx, func(tx *gorm.DB) error {
		kb, err := s.repo.getKnowledgeBase(ctx, kbId)
		if err != nil {
			return err
		}
		if kb == nil {
			return biz.ErrKnowledgeBaseNotFound
		}
		for _, id := range kb.FileIDs {
			if id == fileId.String() {
				return nil
			}
		}
		kb.FileIDs = append(kb.FileIDs, fileId.String())
		return s.repo.updateKnowledgeBase(ctx, tx, kb)
	})
}

const (
	maxChildSize     = 500 //子块最大的长度
	childOverlapSize = 150 //子块重叠的长度
)

func (s *service) processFileAndVectorAndStore(ctx context.Context, fm *model.FileMeta, docs []*schema.Document, kb *model.KnowledgeBase) error {
	var content string
	if len(docs) > 0 && docs[0] != nil {
		content = docs[0].Content
	}
	if content == "" && len(docs) <= 1 {
		logs.Warnf("file content is empty")
		return nil
	}
	var parentModels []*model.FileChunk
	var childSchemaDocs []*schema.Document
	fileType := kbs.FromExtension(fm.FileType)
	switch fileType {
	case kbs.Markdown:
		//md有清晰的标题层级 h2做父分段 h3切子分段
		parentModels, childSchemaDocs = s.processMarkdown(content, fm, kb)
	case kbs.Docx:
		parentModels, childSchemaDocs = s.processDocx(docs, fm, kb)
	case kbs.PDF:
		parentModels, childSchemaDocs = s.processPDF(docs, fm, kb)
	case kbs.Html:
		parentModels, childSchemaDocs = s.processHtml(docs, fm, kb)
	case kbs.Epub:
		parentModels, childSchemaDocs = s.processEpub(docs, fm, kb)
	default:
		//通用处理 按长度窗口切分
		parentTexts := utils.SplitByWindow(content, 1200, 200)
		for i, pText := range parentTexts {
			parentId := uuid.New()
			parentModels = append(parentModels, &model.FileChunk{
				BaseModel:       model.BaseModel{ID: parentId},
				FileID:          fm.ID,
				KnowledgeBaseID: kb.ID,
				Content:         pText,
				ChunkIndex:      i,
				MetaInfo: map[string]interface{}{
					"source":    fm.Name,
					"file_type": fm.FileType,
					"type":      "generic",
				},
				TokenCount: utils.GetTokenCount(pText),
				Status:     model.ChunkStatusEmbedded,
			})
			pathPrefix := fmt.Sprintf("【文档:%s】【片段:%d】\n", fm.Name, i+1)
			childTexts := utils.SplitByWindow(pText, 400, 50)
			for j, cText := range childTexts {
				childSchemaDocs = append(childSchemaDocs, s.buildChildSchemaDoc(parentId, fm, kb, pathPrefix+cText, i, j, nil))
			}
		}
	}
	return s.saveToStores(ctx, kb, parentModels, childSchemaDocs)
}

func (s *service) processMarkdown(content string, fm *model.FileMeta, kb *model.KnowledgeBase) ([]*model.FileChunk, []*schema.Document) {
	var parentModels []*model.FileChunk
	var childSchemaDocs []*schema.Document
	h1Title := utils.ExtractTitle(content, "#")
	if h1Title == "" {
		h1Title = fm.Name
	}
	h2Block := utils.SplitByHeading(content, "##")
	for i, h2 := range h2Block {
		parentId := uuid.New()
		h2Title := utils.ExtractTitle(h2, "##")
		if h2Title == "" {
			h2Title = "概览"
		}
		//h2的内容是parent
		parentModels = append(parentModels, &model.FileChunk{
			BaseModel:       model.BaseModel{ID: parentId},
			FileID:          fm.ID,
			KnowledgeBaseID: kb.ID,
			Content:         h2,
			ChunkIndex:      i,
			MetaInfo: map[string]interface{}{
				"h1": h1Title,
				"h2": h2Title,
			},
			TokenCount: utils.GetTokenCount(h2),
			Status:     model.ChunkStatusEmbedded,
		})
		//h3的内容做child 加前缀表明所属层级
		h3Block := utils.SplitByHeading(h2, "###")
		for j, h3 := range h3Block {
			pathPrefix := fmt.Sprintf("【文档:%s】 > 【主题:%s】", h1Title, h2Title)
			if h3Title := utils.ExtractTitle(h3, "###"); h3Title != "" {
				pathPrefix += " > 【子题:" + h3Title + "】"
			}
			pathPrefix += "\n"
			//防止子内容过长 再按长度做一次切分
			subTexts := utils.SplitTextByLength(h3, maxChildSize-len(pathPrefix), childOverlapSize)
			for _, text := range subTexts {
				childSchemaDocs = append(childSchemaDocs, s.buildChildSchemaDoc(parentId, fm, kb, pathPrefix+text, i, j, nil))
			}
		}
	}
	return parentModels, childSchemaDocs
}

func (s *service) processDocx(sections []*schema.Document, fm *model.FileMeta, kb *model.KnowledgeBase) ([]*model.FileChunk, []*schema.Document) {
	var parentModels []*model.FileChunk
	var childSchemaDocs []*schema.Document
	for _, sec := range sections {
		sectionType, _ := sec.MetaData["sectionType"].(string)
		breadcrumb := fmt.Sprintf("【文档:%s】> 【%s】", fm.Name, sectionLabel(sectionType))
		//word直接读出整段内容 按字符窗口切分父分段
		parentTexts := utils.SplitByWindow(sec.Content, 1200, 200)
		for i, text := range parentTexts {
			endContent := breadcrumb + "> " + text
			parentId := uuid.New()
			parentModels = append(parentModels, &model.FileChunk{
				BaseModel:       model.BaseModel{ID: parentId},
				FileID:          fm.ID,
				KnowledgeBaseID: kb.ID,
				Content:         endContent,
				ChunkIndex:      i,
				MetaInfo:        sec.MetaData,
				TokenCount:      utils.GetTokenCount(endContent),
				Status:          model.ChunkStatusEmbedded,
			})
			childTexts := utils.SplitByWindow(text, 400, 50)
			for j, childText := range childTexts {
				childSchemaDocs = append(childSchemaDocs, s.buildChildSchemaDoc(parentId, fm, kb, breadcrumb+"\n"+childText, i, j, nil))
			}
		}
	}
	return parentModels, childSchemaDocs
}

func sectionLabel(sectionType string) string {
	switch sectionType {
	case "main":
		return "正文"
	case "header":
		return "标题"
	case "footer":
		return "页脚"
	case "table":
		return "表格"
	default:
		return "文档片段"
	}
}

func (s *service) processPDF(pages []*schema.Document, fm *model.FileMeta, kb *model.KnowledgeBase) ([]*model.FileChunk, []*schema.Document) {
	var parentModels []*model.FileChunk
	var childSchemaDocs []*schema.Document
	if len(pages) == 0 {
		return parentModels, childSchemaDocs
	}
	parentTexts := cleanPDFText(pages[0].Content)
	for i, text := range parentTexts {
		breadcrumb := fmt.Sprintf("【文档:%s】> 【片段:%d】", fm.Name, i+1)
		endContent := breadcrumb + "\n" + text
		parentId := uuid.New()
		parentModels = append(parentModels, &model.FileChunk{
			BaseModel:       model.BaseModel{ID: parentId},
			FileID:          fm.ID,
			KnowledgeBaseID: kb.ID,
			Content:         endContent,
			ChunkIndex:      i,
			MetaInfo: map[string]interface{}{
				"segment": i + 1,
			},
			TokenCount: utils.GetTokenCount(endContent),
			Status:     model.ChunkStatusEmbedded,
		})
		childTexts := utils.SplitByWindow(text, 400, 50)
		for j, childText := range childTexts {
			childSchemaDocs = append(childSchemaDocs, s.buildChildSchemaDoc(parentId, fm, kb, breadcrumb+"\n"+childText, i, j, nil))
		}
	}
	return parentModels, childSchemaDocs
}

// cleanPDFText pdf解析出来的文本没有结构 按句子边界聚合成段落再去重
func cleanPDFText(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\t", "")
	content = regexp.MustCompile(`[ ]+`).ReplaceAllString(content, " ")
	var parents []string
	var buf strings.Builder
	flush := func() {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if len(text) < 20 {
			return
		}
		parents = append(parents, text)
	}
	sentenceEnd := regexp.MustCompile(`[。！？.!?]$`)
	for _, block := range strings.Split(content, "\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			flush()
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(block)
		if sentenceEnd.MatchString(block) && buf.Len() >= 800 {
			flush()
		}
	}
	flush()
	//去重
	seen := make(map[string]struct{})
	var result []string
	for _, p := range parents {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}

func (s *service) processHtml(docs []*schema.Document, fm *model.FileMeta, kb *model.KnowledgeBase) ([]*model.FileChunk, []*schema.Document) {
	var parentModels []*model.FileChunk
	var childSchemaDocs []*schema.Document
	if len(docs) == 0 || docs[0].Content == "" {
		return parentModels, childSchemaDocs
	}
	htmlDoc := docs[0]
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc.Content))
	if err != nil {
		logs.Errorf("parse html error: %v", err)
		return parentModels, childSchemaDocs
	}
	webTitle, _ := htmlDoc.MetaData[kbs.MetaKeyTitle].(string)
	if webTitle == "" {
		webTitle = fm.Name
	}
	//按h1/h2做语义边界聚合
	var (
		h1, h2      string
		buf         strings.Builder
		parentIndex int
	)
	flush := func() {
		content := strings.TrimSpace(buf.String())
		buf.Reset()
		if content == "" {
			return
		}
		breadcrumb := fmt.Sprintf("【网页:%s】", webTitle)
		if h1 != "" {
			breadcrumb += " > " + h1
		}
		if h2 != "" {
			breadcrumb += " > " + h2
		}
		fullContent := breadcrumb + "\n" + content
		parentId := uuid.New()
		parentModels = append(parentModels, &model.FileChunk{
			BaseModel:       model.BaseModel{ID: parentId},
			FileID:          fm.ID,
			KnowledgeBaseID: kb.ID,
			Content:         fullContent,
			ChunkIndex:      parentIndex,
			MetaInfo: map[string]interface{}{
				"h1": h1,
				"h2": h2,
			},
			TokenCount: utils.GetTokenCount(fullContent),
			Status:     model.ChunkStatusEmbedded,
		})
		childTexts := utils.SplitByWindow(content, 400, 50)
		for j, childText := range childTexts {
			childSchemaDocs = append(childSchemaDocs, s.buildChildSchemaDoc(parentId, fm, kb, breadcrumb+"\n"+childText, parentIndex, j, nil))
		}
		parentIndex++
	}
	dom.Find("h1, h2, p, li, pre, blockquote, td").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(sel) {
		case "h1":
			flush()
			h1, h2 = text, ""
		case "h2":
			flush()
			h2 = text
		default:
			buf.WriteString(text)
			buf.WriteString("\n")
			if buf.Len() >= 1200 {
				flush()
			}
		}
	})
	flush()
	return parentModels, childSchemaDocs
}

func (s *service) processEpub(chapters []*schema.Document, fm *model.FileMeta, kb *model.KnowledgeBase) ([]*model.FileChunk, []*schema.Document) {
	var parentModels []*model.FileChunk
	var childSchemaDocs []*schema.Document
	for i, chapter := range chapters {
		bookTitle, _ := chapter.MetaData["book_title"].(string)
		if bookTitle == "" {
			bookTitle = fm.Name
		}
		chapterTitle, _ := chapter.MetaData["chapter"].(string)
		if chapterTitle == "" {
			chapterTitle = "未定义章节"
		}
		breadcrumb := fmt.Sprintf("【书名:%s】 > 【章节:%s】", bookTitle, chapterTitle)
		fullParentContent := breadcrumb + "\n" + chapter.Content
		parentId := uuid.New()
		meta := map[string]interface{}{
			"book_title": bookTitle,
			"chapter":    chapterTitle,
		}
		parentModels = append(parentModels, &model.FileChunk{
			BaseModel:       model.BaseModel{ID: parentId},
			FileID:          fm.ID,
			KnowledgeBaseID: kb.ID,
			Content:         fullParentContent,
			ChunkIndex:      i,
			MetaInfo:        meta,
			TokenCount:      utils.GetTokenCount(fullParentContent),
			Status:          model.ChunkStatusEmbedded,
		})
		childTexts := utils.SplitByWindow(chapter.Content, 400, 50)
		for j, childText := range childTexts {
			childSchemaDocs = append(childSchemaDocs, s.buildChildSchemaDoc(parentId, fm, kb, breadcrumb+"\n"+childText, i, j, meta))
		}
	}
	return parentModels, childSchemaDocs
}

func (s *service) buildChildSchemaDoc(parentId uuid.UUID, fm *model.FileMeta, kb *model.KnowledgeBase, text string, i int, j int, meta map[string]any) *schema.Document {
	data := map[string]interface{}{
		kbs.MetaKeyFileId:   fm.ID.String(),
		kbs.MetaKeyKbId:     kb.ID.String(),
		kbs.MetaKeyParentId: parentId.String(),
		"seq":               fmt.Sprintf("%d.%d", i, j),
	}
	for k, v := range meta {
		data[k] = v
	}
	return &schema.Document{
		ID:       uuid.New().String(),
		Content:  text,
		MetaData: data,
	}
}

func (s *service) createTempFileFromUploadFile(src multipart.File) (*os.File, error) {
	tempFile, err := os.CreateTemp("", "upload-*.tmp")
	if err != nil {
		return nil, err
	}
	defer tempFile.Close()
	if _, err = io.Copy(tempFile, src); err != nil {
		os.Remove(tempFile.Name())
		return nil, err
	}
	return tempFile, nil
}

func (s *service) getEmbeddingConfig(provider string, embeddingModelName string, creatorID uuid.UUID) (embedding.Embedder, error) {
	trigger, err := event.Trigger("getEmbeddingConfig", &shared.LLMParams{
		Provider:  provider,
		Model:     embeddingModelName,
		UserId:    creatorID,
		ModelType: model.LLMTypeEmbedding,
	})
	if err != nil {
		return nil, err
	}
	response, ok := trigger.(*shared.EmbeddingConfigResponse)
	if !ok || response == nil || response.Model == nil || response.Model.ProviderConfig == nil {
		return nil, biz.ErrEmbeddingConfigNotFound
	}
	embedder, err := einos.LoadEmbedding(context.Background(),
		response.Model.ProviderConfig.Provider,
		response.Model.ToEmbeddingConfig())
	return embedder, err
}

// vectorStore 按知识库配置的存储类型选择向量库
func (s *service) vectorStore(ctx context.Context, kb *model.KnowledgeBase, embedder embedding.Embedder) (kbs.VectorStore, error) {
	index := s.buildIndex(kb.ID)
	if kb.StorageType == model.StorageTypeMilvus {
		return kbs.NewMilvusVectorStore(ctx, s.milvusClient, index, embedder)
	}
	return kbs.NewESVectorStore(ctx, s.esClient, index, embedder)
}

func (s *service) saveToStores(ctx context.Context, kb *model.KnowledgeBase, parentModels []*model.FileChunk, docs []*schema.Document) error {
	//父分段直接存pg
	err := s.repo.createFileChunks(ctx, parentModels)
	if err != nil {
		logs.Errorf("create file chunks error: %v", err)
		return err
	}
	//子分段进向量库
	embedder, err := s.getEmbeddingConfig(kb.EmbeddingModelProvider, kb.EmbeddingModelName, kb.CreatorID)
	if err != nil {
		logs.Errorf("get embedding config error: %v", err)
		return biz.ErrEmbeddingConfigNotFound
	}
	store, err := s.vectorStore(ctx, kb, embedder)
	if err != nil {
		logs.Errorf("new vector store error: %v", err)
		return err
	}
	if err = store.Store(ctx, docs); err != nil {
		logs.Errorf("store documents error: %v", err)
		return err
	}
	return nil
}

func (s *service) buildIndex(kbId uuid.UUID) string {
	index := fmt.Sprintf("kb_%s", kbId.String())
	return strings.ReplaceAll(index, "-", "_")
}

const maxSearchResult = 5 //最大搜索结果数量

func (s *service) searchKnowledgeBase(ctx context.Context, userId uuid.UUID, kbId uuid.UUID, params searchParams) (*SearchResponse, error) {
	startTime := time.Now()
	kb, err := s.getReadableKnowledgeBase(ctx, userId, kbId)
	if err != nil {
		return nil, err
	}
	if params.Query == "" {
		return &SearchResponse{
			KbId:    kbId,
			Query:   params.Query,
			Results: []*SearchResult{},
			Took:    time.Since(startTime).Microseconds(),
			Total:   0,
		}, nil
	}
	embedder, err := s.getEmbeddingConfig(kb.EmbeddingModelProvider, kb.EmbeddingModelName, kb.CreatorID)
	if err != nil {
		logs.Errorf("get embedding config error: %v", err)
		return nil, biz.ErrEmbeddingConfigNotFound
	}
	store, err := s.vectorStore(ctx, kb, embedder)
	if err != nil {
		logs.Errorf("new vector store error: %v", err)
		return nil, err
	}
	childDocs, err := store.Search(ctx, params.Query, 10, nil)
	if err != nil {
		logs.Errorf("search error: %v", err)
		return nil, err
	}
	//匹配的子分段回溯到父分段 childDocs按分数从高到低排序 记录顺序
	parentIdMap := make(map[string]float64)
	var orderedParentIds []string
	for _, cd := range childDocs {
		pId, ok := cd.MetaData[kbs.MetaKeyParentId].(string)
		if !ok {
			continue
		}
		if _, seen := parentIdMap[pId]; !seen {
			orderedParentIds = append(orderedParentIds, pId)
			parentIdMap[pId] = cd.Score()
		}
	}
	if len(orderedParentIds) == 0 {
		return &SearchResponse{
			KbId:  kbId,
			Query: params.Query,
			Took:  time.Since(startTime).Microseconds(),
			Total: 0,
		}, nil
	}
	if len(orderedParentIds) > maxSearchResult {
		//相似度太低的没必要提供给大模型
		orderedParentIds = orderedParentIds[:maxSearchResult]
	}
	parentChunks, err := s.repo.getFileChunksByIds(ctx, orderedParentIds)
	if err != nil {
		logs.Errorf("get file chunks error: %v", err)
		return nil, errs.DBError
	}
	results := make([]*SearchResult, 0, len(parentChunks))
	for i, chunk := range parentChunks {
		results = append(results, &SearchResult{
			Content:  chunk.Content,
			FileId:   chunk.FileID,
			Id:       chunk.ID,
			Metadata: chunk.MetaInfo,
			Position: i,
			Score:    parentIdMap[chunk.ID.String()],
		})
	}
	return &SearchResponse{
		KbId:    kbId,
		Query:   params.Query,
		Results: results,
		Took:    time.Since(startTime).Microseconds(),
		Total:   int64(len(results)),
	}, nil
}

func (s *service) removeFile(ctx context.Context, userId uuid.UUID, kbId uuid.UUID, fileId uuid.UUID) error {
	kb, err := s.repo.getKnowledgeBase(ctx, kbId)
	if err != nil {
		logs.Errorf("get knowledge base error: %v", err)
		return errs.DBError
	}
	if kb == nil || kb.CreatorID != userId {
		return biz.ErrKnowledgeBaseNotFound
	}
	//动多个表加向量库 用事务
	err = s.repo.transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.deleteFileChunks(ctx, tx, kbId, fileId); err != nil {
			logs.Errorf("delete file chunks error: %v", err)
			return err
		}
		fileIds := make(model.StringArrayJSON, 0, len(kb.FileIDs))
		for _, id := range kb.FileIDs {
			if id != fileId.String() {
				fileIds = append(fileIds, id)
			}
		}
		kb.FileIDs = fileIds
		if err := s.repo.updateKnowledgeBase(ctx, tx, kb); err != nil {
			logs.Errorf("update knowledge base error: %v", err)
			return err
		}
		if kb.StorageType == model.StorageTypeMilvus {
			return s.deleteMilvusIndex(ctx, kbId, fileId)
		}
		return s.deleteEsIndex(ctx, kbId, fileId)
	})
	if err != nil {
		logs.Errorf("remove file error: %v", err)
		return errs.DBError
	}
	return nil
}

func (s *service) deleteEsIndex(ctx context.Context, kbId uuid.UUID, fileId uuid.UUID) error {
	index := s.buildIndex(kbId)
	//删除file_id字段匹配的文档 keyword精确匹配
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"file_id.keyword": fileId.String(),
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		logs.Errorf("encode query error: %v", err)
		return err
	}
	res, err := s.esClient.DeleteByQuery(
		[]string{index},
		&buf,
		s.esClient.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		logs.Errorf("delete by query error: %v", err)
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		logs.Errorf("delete by query error: %v", res)
		return fmt.Errorf("delete by query failed: %s", res.String())
	}
	return nil
}

func (s *service) deleteMilvusIndex(ctx context.Context, kbId uuid.UUID, fileId uuid.UUID) error {
	index := s.buildIndex(kbId)
	expr := fmt.Sprintf("file_id=='%s'", fileId.String())
	err := s.milvusClient.Delete(ctx, index, "", expr)
	if err != nil {
		if errors.Is(err, client.ErrCollectionNotExists{}) {
			return nil
		}
		logs.Errorf("delete milvus index error: %v", err)
		return err
	}
	return nil
}

func newService() *service {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{
			"http://localhost:9200",
		},
	})
	if err != nil {
		panic(err)
	}
	milvusClient, err := client.NewClient(context.Background(), client.Config{
		Address: "localhost:19530",
		DBName:  "pipelines",
	})
	if err != nil {
		panic(err)
	}
	return &service{
		repo:         newModels(database.GetPostgresDB().GormDB),
		esClient:     esClient,
		milvusClient: milvusClient,
	}
}

func (s *service) Close() error {
	if s.milvusClient != nil {
		return s.milvusClient.Close()
	}
	return nil
}
