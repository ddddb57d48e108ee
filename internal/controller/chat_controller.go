package controller

import (
	"strings"
	"study_portal_backend/internal/service"
	"study_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// ChatRequest swagger:model ChatRequest
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse swagger:model ChatResponse
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat godoc
// @Summary AI 学习助手
// @Description 单轮问答；未配置密钥或调用失败时返回提示文本
// @Tags AI
// @Accept json
// @Produce json
// @Param body body ChatRequest true "问题"
// @Success 200 {object} util.Response{data=ChatResponse} "成功"
// @Failure 400 {object} util.Response "问题为空"
// @Failure 429 {object} util.Response "请求过于频繁"
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		util.BadRequest(ctx, util.ErrEmptyPrompt.Error())
		return
	}

	reply := c.ChatService.RunChat(ctx.Request.Context(), req.Prompt)
	util.Success(ctx, ChatResponse{Reply: reply})
}
