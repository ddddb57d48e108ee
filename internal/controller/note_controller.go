package controller

import (
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/service"
	"study_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	MaterialService *service.MaterialService
}

func NewNoteController(materialService *service.MaterialService) *NoteController {
	return &NoteController{MaterialService: materialService}
}

// ListNotesRequest 笔记查询参数
// swagger:model ListNotesRequest
type ListNotesRequest struct {
	Search string `form:"search"`
	Tag    string `form:"tag"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
}

// NoteRequest 新建或编辑笔记，tags 为逗号分隔字符串
// swagger:model NoteRequest
type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// ListNotes godoc
// @Summary 笔记列表
// @Description 按标签和关键字筛选后分页，同时返回可选标签
// @Tags 笔记
// @Produce json
// @Param search query string false "关键字"
// @Param tag query string false "标签，All Tags 表示全部"
// @Param page query int false "页码" default(1)
// @Success 200 {object} util.Response{data=service.NotesPage} "成功"
// @Router /api/notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	var req ListNotesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.MaterialService.Notes(viewer(ctx), catalog.NotesQuery{
		Tag:    req.Tag,
		Search: req.Search,
		Page:   req.Page,
	}))
}

// CreateNote godoc
// @Summary 新建笔记
// @Description 笔记无需审核，创建后立即可见
// @Tags 笔记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NoteRequest true "笔记内容"
// @Success 201 {object} util.Response{data=model.Material} "创建成功"
// @Failure 400 {object} util.Response "校验失败，data.errors 为字段错误"
// @Router /api/notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.MaterialService.CreateNote(viewer(ctx), service.NoteRequest(req))
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// UpdateNote godoc
// @Summary 编辑笔记
// @Description 作者本人或管理员可编辑
// @Tags 笔记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "笔记ID"
// @Param body body NoteRequest true "笔记内容"
// @Success 200 {object} util.Response{data=model.Material} "成功"
// @Failure 400 {object} util.Response "校验失败"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "笔记不存在"
// @Router /api/notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	id, ok := materialID(ctx)
	if !ok {
		return
	}

	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.MaterialService.UpdateNote(viewer(ctx), id, service.NoteRequest(req))
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Success(ctx, m)
}
