// Package clitest 为 CLI 测试启动一个完整的 ia-chat 服务端
package clitest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ia-chat/internal/database/dbtest"
	"ia-chat/internal/handler"
	"ia-chat/internal/llm"
	"ia-chat/internal/repository"
	"ia-chat/internal/service"
)

// Provider 返回固定回复的 AI 服务
type Provider struct {
	Reply string
	Err   error
}

// Complete 实现 llm.Provider
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return p.Reply, p.Err
}

// Server 内存数据库上的测试服务端
type Server struct {
	URL      string
	Provider *Provider
}

// NewServer 启动服务端，测试结束时自动关闭
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	store := service.NewConversationService(
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db),
		"Nova conversa",
		zap.NewNop(),
	)
	provider := &Provider{Reply: "Olá! Como posso ajudar?"}
	chat := service.NewChatService(store, provider, "test-model", 100, zap.NewNop())

	router := gin.New()
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	handler.RegisterRoutes(router, handler.NewConversationHandler(store), handler.NewChatHandler(chat))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &Server{URL: srv.URL, Provider: provider}
}
