package controller

import (
	"errors"
	"study_portal_backend/internal/service"
	"study_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	ForumService *service.ForumService
}

func NewForumController(forumService *service.ForumService) *ForumController {
	return &ForumController{ForumService: forumService}
}

// ListPosts godoc
// @Summary 论坛帖子列表
// @Description 最新的帖子在前
// @Tags 论坛
// @Produce json
// @Success 200 {object} util.Response{data=[]service.PostView} "成功"
// @Router /api/forum/posts [get]
func (c *ForumController) ListPosts(ctx *gin.Context) {
	posts, err := c.ForumService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// CreatePost godoc
// @Summary 发布帖子
// @Description 可匿名发布
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreatePostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=service.PostView} "发布成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/forum/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	var req service.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ForumService.Create(util.GetUserFromContext(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidPost):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, post)
}
