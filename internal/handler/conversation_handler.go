package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"ia-chat/internal/model"
	"ia-chat/internal/service"
	"ia-chat/pkg/response"
)

// ConversationHandler 会话请求处理器
type ConversationHandler struct {
	conversationService *service.ConversationService
}

// NewConversationHandler 创建 ConversationHandler 实例
func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
	}
}

// CreateConversationRequest 创建会话请求
type CreateConversationRequest struct {
	Title *string `json:"title"` // 会话标题，不传时使用默认标题
}

// UpdateConversationRequest 修改会话标题请求
type UpdateConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

// AddMessageRequest 发送消息请求
type AddMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// ConversationListResponse 会话列表响应
type ConversationListResponse struct {
	Conversations []model.Conversation `json:"conversations"`
}

// MessageListResponse 消息列表响应
type MessageListResponse struct {
	Messages []model.Message `json:"messages"`
}

// ListConversations 获取全部会话
// @Summary 获取会话列表
// @Tags 会话
// @Produce json
// @Success 200 {object} response.Response{data=ConversationListResponse}
// @Router /api/v1/conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	conversations, err := h.conversationService.ListConversations(c.Request.Context())
	if err != nil {
		writeError(c, err, "获取会话列表失败")
		return
	}

	response.Success(c, ConversationListResponse{Conversations: conversations})
}

// CreateConversation 创建新会话
// @Summary 创建会话
// @Tags 会话
// @Accept json
// @Produce json
// @Param body body CreateConversationRequest false "会话标题"
// @Success 201 {object} response.Response{data=model.Conversation}
// @Router /api/v1/conversations [post]
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	// 允许空请求体
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "无效的请求参数")
		return
	}

	title := h.conversationService.DefaultTitle()
	if req.Title != nil {
		title = *req.Title
	}

	conversation, err := h.conversationService.CreateConversation(c.Request.Context(), title)
	if err != nil {
		writeError(c, err, "创建会话失败")
		return
	}

	response.Created(c, conversation)
}

// OpenLatest 打开最新的会话，没有会话时自动创建
// @Summary 打开最新会话
// @Tags 会话
// @Produce json
// @Success 200 {object} response.Response{data=model.Conversation}
// @Router /api/v1/conversations/latest [get]
func (h *ConversationHandler) OpenLatest(c *gin.Context) {
	conversation, err := h.conversationService.OpenLatest(c.Request.Context())
	if err != nil {
		writeError(c, err, "打开会话失败")
		return
	}

	response.Success(c, conversation)
}

// GetConversation 获取会话详情
// @Summary 获取会话
// @Tags 会话
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=model.Conversation}
// @Router /api/v1/conversations/{id} [get]
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conversation, err := h.conversationService.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "获取会话失败")
		return
	}
	if conversation == nil {
		response.ConversationNotFound(c)
		return
	}

	response.Success(c, conversation)
}

// UpdateConversation 修改会话标题
// @Summary 修改会话标题
// @Tags 会话
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body UpdateConversationRequest true "新标题"
// @Success 200 {object} response.Response{data=model.Conversation}
// @Router /api/v1/conversations/{id} [put]
func (h *ConversationHandler) UpdateConversation(c *gin.Context) {
	var req UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "标题不能为空")
		return
	}

	conversation, err := h.conversationService.UpdateConversationTitle(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		writeError(c, err, "修改会话失败")
		return
	}
	if conversation == nil {
		response.ConversationNotFound(c)
		return
	}

	response.Success(c, conversation)
}

// DeleteConversation 删除会话及其消息
// @Summary 删除会话
// @Tags 会话
// @Param id path string true "会话ID"
// @Success 204
// @Router /api/v1/conversations/{id} [delete]
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	deleted, err := h.conversationService.DeleteConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "删除会话失败")
		return
	}
	if !deleted {
		response.ConversationNotFound(c)
		return
	}

	response.NoContent(c)
}

// GetMessages 获取会话的全部消息
// @Summary 获取消息
// @Tags 消息
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=MessageListResponse}
// @Router /api/v1/conversations/{id}/messages [get]
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	messages, err := h.conversationService.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "获取消息失败")
		return
	}

	response.Success(c, MessageListResponse{Messages: messages})
}

// AddMessage 用户发送一条消息
// @Summary 发送消息
// @Tags 消息
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body AddMessageRequest true "消息内容"
// @Success 201 {object} response.Response{data=model.Message}
// @Router /api/v1/conversations/{id}/messages [post]
func (h *ConversationHandler) AddMessage(c *gin.Context) {
	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "消息不能为空")
		return
	}

	message, err := h.conversationService.AddMessage(c.Request.Context(), c.Param("id"), req.Text, model.SenderUser)
	if err != nil {
		writeError(c, err, "发送消息失败")
		return
	}

	response.Created(c, message)
}
