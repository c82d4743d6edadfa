package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ia-chat/internal/llm"
	"ia-chat/internal/model"
	"ia-chat/pkg/util"
)

// 生成标题时保留的最大字符数
const titleMaxRunes = 80

const titlePrompt = `Create a short title (at most 6 words) for the conversation below.
Use the same language as the conversation. Reply with the title only, without quotes.

`

// Store 对话编排依赖的会话存储能力
// ConversationService 实现了该接口
type Store interface {
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	AddMessage(ctx context.Context, conversationID, text string, sender model.Sender) (*model.Message, error)
	UpdateConversationTitle(ctx context.Context, id, title string) (*model.Conversation, error)
}

// ChatService 对话编排服务
// 读取完整历史、调用 AI、把回复写回存储
type ChatService struct {
	store          Store        // 会话存储
	provider       llm.Provider // AI 服务
	model          string       // 模型标识
	titleMaxTokens int          // 生成标题的输出上限
	log            *zap.Logger
}

// NewChatService 创建 ChatService 实例
func NewChatService(store Store, provider llm.Provider, model string, titleMaxTokens int, log *zap.Logger) *ChatService {
	return &ChatService{
		store:          store,
		provider:       provider,
		model:          model,
		titleMaxTokens: titleMaxTokens,
		log:            log.Named("chat"),
	}
}

// RequestAssistantReply 请求 AI 对当前会话做出回复
// 参数:
//   - ctx: 上下文，调用方取消不会中断 AI 调用和写入
//   - conversationID: 会话ID
//
// 返回:
//   - *model.Message: 已保存的 assistant 消息
//   - error: ErrNotFound / ErrEmptyHistory / ErrProvider / ErrEmptyCompletion / ErrStorage
func (s *ChatService) RequestAssistantReply(ctx context.Context, conversationID string) (*model.Message, error) {
	ctx = context.WithoutCancel(ctx)

	history, err := s.loadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	turns, err := toTurns(history)
	if err != nil {
		return nil, err
	}

	text, err := s.complete(ctx, llm.CompletionRequest{Model: s.model, Turns: turns})
	if err != nil {
		return nil, err
	}

	reply, err := s.store.AddMessage(ctx, conversationID, text, model.SenderAssistant)
	if err != nil {
		return nil, err
	}

	s.log.Info("assistant reply saved",
		zap.String("conversation_id", conversationID),
		zap.Int("history", len(history)),
		zap.Int("reply_len", len(text)),
	)
	return reply, nil
}

// GenerateTitle 根据会话内容让 AI 生成标题并保存
func (s *ChatService) GenerateTitle(ctx context.Context, conversationID string) (*model.Conversation, error) {
	ctx = context.WithoutCancel(ctx)

	history, err := s.loadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	text, err := s.complete(ctx, llm.CompletionRequest{
		Model:     s.model,
		Turns:     []llm.Turn{{Role: llm.RoleUser, Content: buildTitlePrompt(history)}},
		MaxTokens: s.titleMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	title := cleanTitle(text)
	if title == "" {
		return nil, fmt.Errorf("generate title: %w", model.ErrEmptyCompletion)
	}

	conversation, err := s.store.UpdateConversationTitle(ctx, conversationID, title)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		// 调用 AI 期间会话被删除
		return nil, fmt.Errorf("conversation %s: %w", conversationID, model.ErrNotFound)
	}

	s.log.Info("conversation title generated", zap.String("conversation_id", conversationID))
	return conversation, nil
}

func (s *ChatService) loadHistory(ctx context.Context, conversationID string) ([]model.Message, error) {
	history, err := s.store.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, model.ErrEmptyHistory)
	}
	return history, nil
}

// complete 调用 AI，不重试
// 返回的文本为空白时视为 ErrEmptyCompletion
func (s *ChatService) complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	text, err := s.provider.Complete(ctx, req)
	if err != nil {
		s.log.Warn("completion failed", zap.String("model", req.Model), zap.Error(err))
		return "", fmt.Errorf("%w: %w", model.ErrProvider, err)
	}
	if util.IsBlank(text) {
		return "", fmt.Errorf("complete: %w", model.ErrEmptyCompletion)
	}
	return text, nil
}

// toTurns 把消息历史转换为 AI 对话轮次，保持原有顺序，不做截断
func toTurns(history []model.Message) ([]llm.Turn, error) {
	turns := make([]llm.Turn, len(history))
	for i, m := range history {
		role, err := roleFor(m.Sender)
		if err != nil {
			return nil, err
		}
		turns[i] = llm.Turn{Role: role, Content: m.Text}
	}
	return turns, nil
}

func roleFor(sender model.Sender) (llm.Role, error) {
	switch sender {
	case model.SenderUser:
		return llm.RoleUser, nil
	case model.SenderAssistant:
		return llm.RoleAssistant, nil
	default:
		return "", fmt.Errorf("%w: unknown sender %q", model.ErrValidation, sender)
	}
}

func buildTitlePrompt(history []model.Message) string {
	var b strings.Builder
	b.WriteString(titlePrompt)
	for _, m := range history {
		b.WriteString(string(m.Sender))
		b.WriteString(": ")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// cleanTitle 取第一行非空文本，去掉引号和 markdown 标记
func cleanTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#* ")
		line = strings.TrimPrefix(line, "Title:")
		line = strings.Trim(line, " \t\"'`*“”«»")
		if line != "" {
			return util.TruncateString(line, titleMaxRunes)
		}
	}
	return ""
}
