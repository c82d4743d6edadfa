// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ia-chat/internal/model"
	"ia-chat/pkg/response"
)

// writeError 把业务错误映射为 HTTP 响应
// 错误同时挂到 gin.Context 上，由日志中间件输出
func writeError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, model.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrNotFound):
		response.ConversationNotFound(c)
	case errors.Is(err, model.ErrEmptyHistory):
		response.EmptyHistory(c)
	case errors.Is(err, model.ErrEmptyCompletion):
		response.EmptyCompletion(c)
	case errors.Is(err, model.ErrProvider):
		response.ProviderError(c, "AI 服务调用失败")
	case errors.Is(err, model.ErrStorage):
		response.StorageError(c, fallback)
	default:
		response.InternalError(c, fallback)
	}
}
