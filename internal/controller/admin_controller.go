package controller

import (
	"errors"
	"fmt"
	"net/http"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/service"
	"study_portal_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	MaterialService *service.MaterialService
	ReportService   *service.ReportService
	UserService     *service.UserService
	SettingsService *service.SettingsService
}

func NewAdminController(materialService *service.MaterialService, reportService *service.ReportService, userService *service.UserService, settingsService *service.SettingsService) *AdminController {
	return &AdminController{
		MaterialService: materialService,
		ReportService:   reportService,
		UserService:     userService,
		SettingsService: settingsService,
	}
}

// ApprovalRequest 审核状态
// swagger:model ApprovalRequest
type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// RoleRequest 修改角色
// swagger:model RoleRequest
type RoleRequest struct {
	Role model.UserRole `json:"role" binding:"required,oneof=user admin"`
}

// AdminStats 管理后台统计
type AdminStats struct {
	TotalMaterials   int   `json:"totalMaterials"`
	PendingApprovals int   `json:"pendingApprovals"`
	TotalDownloads   int   `json:"totalDownloads"`
	TotalUsers       int64 `json:"totalUsers"`
}

// ListMaterials godoc
// @Summary 管理后台资料列表
// @Description 按标题、科目、上传者邮箱搜索，分为待审核和已审核
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param search query string false "关键字"
// @Success 200 {object} util.Response{data=service.AdminOverview} "成功"
// @Router /api/admin/materials [get]
func (c *AdminController) ListMaterials(ctx *gin.Context) {
	overview, err := c.MaterialService.AdminOverview(viewer(ctx), ctx.Query("search"))
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// SetApproval godoc
// @Summary 审核资料
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "资料ID"
// @Param body body ApprovalRequest true "审核状态"
// @Success 200 {object} util.Response{data=model.Material} "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/admin/materials/{id}/approval [put]
func (c *AdminController) SetApproval(ctx *gin.Context) {
	id, ok := materialID(ctx)
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.MaterialService.SetApproval(viewer(ctx), id, *req.Approved)
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// ExportMaterials godoc
// @Summary 导出资料目录
// @Tags 管理
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "xlsx 文件"
// @Router /api/admin/materials/export [get]
func (c *AdminController) ExportMaterials(ctx *gin.Context) {
	buf, err := c.ReportService.ExportCatalog(viewer(ctx))
	if err != nil {
		writeMaterialError(ctx, err)
		return
	}

	filename := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetStats godoc
// @Summary 管理后台统计
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=AdminStats} "成功"
// @Router /api/admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	st := c.MaterialService.Catalog.Stats()
	users, err := c.UserService.Count()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, AdminStats{
		TotalMaterials:   st.Total,
		PendingApprovals: st.Pending,
		TotalDownloads:   st.Downloads,
		TotalUsers:       users,
	})
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ChangeRole godoc
// @Summary 修改用户角色
// @Description 管理员不能修改自己的角色
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "用户邮箱"
// @Param body body RoleRequest true "角色"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "不能修改自己的角色"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{email}/role [put]
func (c *AdminController) ChangeRole(ctx *gin.Context) {
	var req RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.ChangeRole(viewer(ctx), ctx.Param("email"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSelfRoleChange), errors.Is(err, util.ErrInvalidRole):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// GetSettings godoc
// @Summary 站点设置
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.SiteSettings} "成功"
// @Router /api/admin/settings [get]
func (c *AdminController) GetSettings(ctx *gin.Context) {
	settings, err := c.SettingsService.Get()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// UpdateSettings godoc
// @Summary 更新站点设置
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.SiteSettings true "站点设置"
// @Success 200 {object} util.Response{data=model.SiteSettings} "成功"
// @Router /api/admin/settings [put]
func (c *AdminController) UpdateSettings(ctx *gin.Context) {
	var req model.SiteSettings
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.SettingsService.Update(&req); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.GetSettings(ctx)
}

// GetAnnouncement godoc
// @Summary 全站公告
// @Description 未启用时 data 为空
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response{data=model.Announcement} "成功"
// @Router /api/announcement [get]
func (c *AdminController) GetAnnouncement(ctx *gin.Context) {
	a, err := c.SettingsService.GetAnnouncement()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, a)
}
