package handler

import (
	"github.com/gin-gonic/gin"

	"ia-chat/internal/service"
	"ia-chat/pkg/response"
)

// ChatHandler AI 对话请求处理器
// 请求同步等待 AI 返回，客户端随后重新拉取消息列表
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// RequestReply 请求 AI 回复
// @Summary 请求 AI 回复
// @Tags 对话
// @Produce json
// @Param id path string true "会话ID"
// @Success 201 {object} response.Response{data=model.Message}
// @Router /api/v1/conversations/{id}/reply [post]
func (h *ChatHandler) RequestReply(c *gin.Context) {
	reply, err := h.chatService.RequestAssistantReply(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "获取 AI 回复失败")
		return
	}

	response.Created(c, reply)
}

// GenerateTitle 让 AI 为会话生成标题
// @Summary 生成会话标题
// @Tags 对话
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=model.Conversation}
// @Router /api/v1/conversations/{id}/title [post]
func (h *ChatHandler) GenerateTitle(c *gin.Context) {
	conversation, err := h.chatService.GenerateTitle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "生成标题失败")
		return
	}

	response.Success(c, conversation)
}
