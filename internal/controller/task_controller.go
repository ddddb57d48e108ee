package controller

import (
	"errors"
	"strconv"
	"study_portal_backend/internal/service"
	"study_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TaskController 学习计划接口
type TaskController struct {
	PlannerService *service.PlannerService
}

func NewTaskController(plannerService *service.PlannerService) *TaskController {
	return &TaskController{PlannerService: plannerService}
}

// ListTasks godoc
// @Summary 学习计划任务列表
// @Description 未完成的在前，按截止日期排序；附带完成情况统计
// @Tags 学习计划
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=map[string]interface{}} "成功"
// @Router /api/planner/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.PlannerService.List(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	summary, err := c.PlannerService.Summary(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"tasks":   tasks,
		"summary": summary,
	})
}

// CreateTask godoc
// @Summary 新建学习任务
// @Tags 学习计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateTaskRequest true "任务"
// @Success 201 {object} util.Response{data=model.StudyTask} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/planner/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.PlannerService.Create(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidTask) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, task)
}

// ToggleTask godoc
// @Summary 切换任务完成状态
// @Tags 学习计划
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Success 200 {object} util.Response{data=model.StudyTask} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/planner/tasks/{id}/toggle [patch]
func (c *TaskController) ToggleTask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid task ID")
		return
	}

	task, err := c.PlannerService.Toggle(user.UserID, uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, task)
}
