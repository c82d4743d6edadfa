package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LangchainProvider 基于 langchaingo 的补全服务
type LangchainProvider struct {
	model llms.Model
}

// NewLangchain 使用 langchaingo 的 OpenAI 兼容客户端创建补全服务
func NewLangchain(apiKey, baseURL, model string) (*LangchainProvider, error) {
	opts := []openai.Option{openai.WithToken(apiKey), openai.WithModel(model)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	m, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init langchain openai: %w", err)
	}
	return NewLangchainFromModel(m), nil
}

// NewLangchainFromModel 包装任意 langchaingo 模型
func NewLangchainFromModel(m llms.Model) *LangchainProvider {
	return &LangchainProvider{model: m}
}

// Complete 发送一次补全请求
func (p *LangchainProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Turns))
	for _, t := range req.Turns {
		messageType, err := chatMessageType(t.Role)
		if err != nil {
			return "", err
		}
		messages = append(messages, llms.TextParts(messageType, t.Content))
	}

	var opts []llms.CallOption
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := p.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

func chatMessageType(r Role) (schema.ChatMessageType, error) {
	switch r {
	case RoleSystem:
		return schema.ChatMessageTypeSystem, nil
	case RoleUser:
		return schema.ChatMessageTypeHuman, nil
	case RoleAssistant:
		return schema.ChatMessageTypeAI, nil
	default:
		return "", fmt.Errorf("unsupported role: %s", r)
	}
}
