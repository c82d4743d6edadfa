package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册会话和对话相关的 API 路由
func RegisterRoutes(router *gin.Engine, conversationHandler *ConversationHandler, chatHandler *ChatHandler) {
	// API v1 路由组
	v1 := router.Group("/api/v1")

	conversations := v1.Group("/conversations")
	{
		conversations.GET("", conversationHandler.ListConversations)
		conversations.POST("", conversationHandler.CreateConversation)
		conversations.GET("/latest", conversationHandler.OpenLatest)
		conversations.GET("/:id", conversationHandler.GetConversation)
		conversations.PUT("/:id", conversationHandler.UpdateConversation)
		conversations.DELETE("/:id", conversationHandler.DeleteConversation)
		conversations.GET("/:id/messages", conversationHandler.GetMessages)
		conversations.POST("/:id/messages", conversationHandler.AddMessage)
		conversations.POST("/:id/reply", chatHandler.RequestReply)
		conversations.POST("/:id/title", chatHandler.GenerateTitle)
	}
}
