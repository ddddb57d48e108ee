package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/service"
	"study_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// ListMaterialsRequest 资料列表查询参数
// swagger:model ListMaterialsRequest
type ListMaterialsRequest struct {
	View    string `form:"view"`
	Search  string `form:"search"`
	Subject string `form:"subject"`
}

// UploadMaterialRequest 上传表单字段，文件字段名为 file
// swagger:model UploadMaterialRequest
type UploadMaterialRequest struct {
	Title       string `form:"title" binding:"required"`
	Subject     string `form:"subject" binding:"required"`
	Description string `form:"description"`
	Branch      string `form:"branch" binding:"required"`
	Year        string `form:"year" binding:"required"`
	Type        string `form:"type" binding:"required"`
}

func viewer(ctx *gin.Context) *catalog.Viewer {
	return util.GetUserFromContext(ctx).Viewer()
}

func materialID(ctx *gin.Context) (uint64, bool) {
	id, ok := util.ParseMaterialID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid material ID")
	}
	return id, ok
}

// writeMaterialError 资料相关错误统一映射为响应
func writeMaterialError(ctx *gin.Context, err error) {
	var noteErrs catalog.NoteErrors
	switch {
	case errors.As(err, &noteErrs):
		util.ValidationError(ctx, noteErrs)
	case errors.Is(err, util.ErrMaterialNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidFileType), errors.Is(err, util.ErrInvalidMaterial):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListMaterials godoc
// @Summary 资料列表
// @Description 按视图、关键字和科目筛选资料，管理员可见未审核资料
// @Tags 资料
// @Produce json
// @Param view query string false "视图: home, materials, questionBank, downloads"
// @Param search query string false "关键字"
// @Param subject query string false "科目，All 表示全部"
// @Success 200 {object} util.Response{data=[]model.Material} "成功"
// @Router /api/materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	var req ListMaterialsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.MaterialService.List(viewer(ctx), service.ListRequest{
		View:    catalog.View(req.View),
		Search:  req.Search,
		Subject: req.Subject,
	}))
}

// RecentMaterials godoc
// @Summary 最近上传
// @Tags 资料
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Material} "成功"
// @Router /api/materials/recent [get]
func (c *MaterialController) RecentMaterials(ctx *gin.Context) {
	util.Success(ctx, c.MaterialService.Recent(viewer(ctx)))
}

// ListSubjects godoc
// @Summary 科目列表
// @Description 下载页的科目筛选项，第一项为 All
// @Tags 资料
// @Produce json
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Router /api/materials/subjects [get]
func (c *MaterialController) ListSubjects(ctx *gin.Context) {
	util.Success(ctx, c.MaterialService.Subjects(viewer(ctx)))
}

// GetMaterial godoc
// @Summary 资料详情
// @Tags 资料
// @Produce json
// @Param id path int true "资料ID"
// @Success 200 {object} util.Response{data=model.Material} "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id} [get]
func (c *MaterialController) GetMaterial(ctx *gin.Context) {
	id, ok := materialID(ctx)
	if !ok {
		return
	}
	m, err := c.MaterialService.Get(viewer(ctx), id)
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// DownloadMaterial godoc
// @Summary 下载资料
// @Description 下载次数加一；文本笔记以 txt 文件返回
// @Tags 资料
// @Produce octet-stream
// @Param id path int true "资料ID"
// @Success 200 {file} file "文件内容"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id}/download [get]
func (c *MaterialController) DownloadMaterial(ctx *gin.Context) {
	id, ok := materialID(ctx)
	if !ok {
		return
	}

	d, err := c.MaterialService.Download(ctx.Request.Context(), viewer(ctx), id)
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	defer d.Body.Close()

	contentType := d.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.DataFromReader(http.StatusOK, -1, contentType, d.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", d.FileName),
	})
}

// UploadMaterial godoc
// @Summary 上传资料
// @Description 上传的资料需管理员审核后才对其他用户可见
// @Tags 资料
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param subject formData string true "科目"
// @Param description formData string false "描述"
// @Param branch formData string true "专业"
// @Param year formData string true "年级"
// @Param type formData string true "类型: PYQs, Assignments, Model Papers, Notes"
// @Param file formData file true "文件: PDF, DOCX, PPTX, TXT, JPEG, PNG, GIF"
// @Success 201 {object} util.Response{data=model.Material} "上传成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 413 {object} util.Response "文件过大"
// @Router /api/materials [post]
func (c *MaterialController) UploadMaterial(ctx *gin.Context) {
	var req UploadMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	m, err := c.MaterialService.Upload(ctx.Request.Context(), viewer(ctx), service.UploadRequest{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Branch:      model.Branch(req.Branch),
		Year:        model.Year(req.Year),
		Type:        model.MaterialType(req.Type),
		FileName:    file.Filename,
		Size:        file.Size,
		File:        src,
	})
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// DeleteMaterial godoc
// @Summary 删除资料
// @Description 上传者本人或管理员可删除
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Param id path int true "资料ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, ok := materialID(ctx)
	if !ok {
		return
	}
	if err := c.MaterialService.Delete(ctx.Request.Context(), viewer(ctx), id); err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": strconv.FormatUint(id, 10)})
}
