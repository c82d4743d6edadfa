// Package llm 封装外部大模型补全服务
// 上层只依赖 Provider 接口，具体实现由 NewProvider 按配置选择
package llm

import (
	"context"
	"errors"
)

// Role 对话角色
type Role string

// 补全请求中使用的角色
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn 一轮带角色的对话
type Turn struct {
	Role    Role
	Content string
}

// CompletionRequest 补全请求
type CompletionRequest struct {
	Model     string // 模型标识
	Turns     []Turn // 按时间顺序排列的对话
	MaxTokens int    // 输出 token 上限，0 表示不限制
}

// Provider 补全服务
// 返回空字符串表示服务没有给出可用内容，由调用方决定如何处理
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrNotConfigured 未配置 API Key 时返回
var ErrNotConfigured = errors.New("AI service not configured (missing API key)")

// unconfigured 在缺少 API Key 时占位，服务仍可启动，只有调用 AI 时才报错
type unconfigured struct{}

func (unconfigured) Complete(context.Context, CompletionRequest) (string, error) {
	return "", ErrNotConfigured
}
