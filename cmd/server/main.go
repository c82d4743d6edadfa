// Package main 是服务端的入口点
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ia-chat/internal/config"
	"ia-chat/internal/database"
	"ia-chat/internal/handler"
	"ia-chat/internal/llm"
	"ia-chat/internal/middleware"
	"ia-chat/internal/repository"
	"ia-chat/internal/service"
	"ia-chat/pkg/logger"
	"ia-chat/pkg/response"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	// 初始化数据库
	db, err := database.Open(cfg.Database, cfg.Server.Mode, zlog)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// 自动迁移数据库表
	zlog.Info("running database migrations", zap.String("driver", cfg.Database.Driver))
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	// 初始化 AI 服务
	provider, err := llm.NewProvider(cfg.AI)
	if err != nil {
		return err
	}
	if cfg.AI.APIKey == "" {
		zlog.Warn("AI api key is empty, assistant replies will fail")
	}

	// 初始化 Repository 层
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// 初始化 Service 层
	conversationService := service.NewConversationService(conversationRepo, messageRepo, cfg.Conversation.DefaultTitle, zlog)
	chatService := service.NewChatService(conversationService, provider, cfg.AI.Model, cfg.AI.TitleMaxTokens, zlog)

	// 初始化 Handler 层
	conversationHandler := handler.NewConversationHandler(conversationService)
	chatHandler := handler.NewChatHandler(chatService)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoveryMiddleware(zlog))
	router.Use(middleware.LoggerMiddleware(zlog))
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.Server.CORS)))

	registerRoutes(router, db, conversationHandler, chatHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", addr), zap.String("model", cfg.AI.Model))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zlog.Info("server exited")
	return nil
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	db *gorm.DB,
	conversationHandler *handler.ConversationHandler,
	chatHandler *handler.ChatHandler,
) {
	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.RegisterRoutes(router, conversationHandler, chatHandler)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})
}
