// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ia-chat/internal/model"
	"ia-chat/internal/repository"
	"ia-chat/pkg/util"
)

// ConversationService 会话服务
// 负责会话和消息的增删改查，所有写入前先做参数校验
type ConversationService struct {
	conversationRepo *repository.ConversationRepository // 会话数据访问层
	messageRepo      *repository.MessageRepository      // 消息数据访问层
	defaultTitle     string                             // 未指定标题时使用
	log              *zap.Logger
}

// NewConversationService 创建 ConversationService 实例
func NewConversationService(
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
	defaultTitle string,
	log *zap.Logger,
) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		defaultTitle:     defaultTitle,
		log:              log.Named("conversation"),
	}
}

// DefaultTitle 返回新建会话的默认标题
func (s *ConversationService) DefaultTitle() string {
	return s.defaultTitle
}

// ListConversations 获取全部会话，最新的在前
func (s *ConversationService) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	return s.conversationRepo.List(ctx)
}

// GetConversation 获取单个会话
// 会话不存在时返回 nil, nil
func (s *ConversationService) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	return s.conversationRepo.GetByID(ctx, id)
}

// CreateConversation 创建新会话
// 参数:
//   - ctx: 上下文
//   - title: 会话标题，去掉首尾空白后不能为空
//
// 返回:
//   - *model.Conversation: 新会话，ID 和创建时间由服务端生成
//   - error: ErrValidation 或 ErrStorage
func (s *ConversationService) CreateConversation(ctx context.Context, title string) (*model.Conversation, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	conversation := &model.Conversation{Title: title}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	s.log.Info("conversation created", zap.String("conversation_id", conversation.ID))
	return conversation, nil
}

// CreateDefaultConversation 使用默认标题创建会话
func (s *ConversationService) CreateDefaultConversation(ctx context.Context) (*model.Conversation, error) {
	return s.CreateConversation(ctx, s.defaultTitle)
}

// OpenLatest 返回最新的会话
// 一个会话都没有时自动创建一个默认标题的会话
func (s *ConversationService) OpenLatest(ctx context.Context) (*model.Conversation, error) {
	latest, err := s.conversationRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		return latest, nil
	}
	return s.CreateDefaultConversation(ctx)
}

// UpdateConversationTitle 修改会话标题
// 会话不存在时返回 nil, nil
func (s *ConversationService) UpdateConversationTitle(ctx context.Context, id, title string) (*model.Conversation, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return s.conversationRepo.UpdateTitle(ctx, id, title)
}

// DeleteConversation 删除会话及其全部消息
// 返回是否真的删除了一行
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) (bool, error) {
	deleted, err := s.conversationRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("conversation deleted", zap.String("conversation_id", id))
	}
	return deleted, nil
}

// GetMessages 获取会话的全部消息，按时间正序
// 会话不存在时返回 ErrNotFound，存在但没有消息时返回空切片
func (s *ConversationService) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	if err := s.ensureExists(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByConversationID(ctx, conversationID)
}

// AddMessage 向会话追加一条消息
// 参数:
//   - ctx: 上下文
//   - conversationID: 会话ID
//   - text: 消息内容，不能为空白
//   - sender: 发送方，只能是 user 或 assistant
//
// 返回:
//   - *model.Message: 新消息，ID 和时间戳由服务端生成
//   - error: ErrValidation / ErrNotFound / ErrStorage
func (s *ConversationService) AddMessage(ctx context.Context, conversationID, text string, sender model.Sender) (*model.Message, error) {
	if util.IsBlank(text) {
		return nil, fmt.Errorf("%w: message text is empty", model.ErrValidation)
	}
	if !sender.Valid() {
		return nil, fmt.Errorf("%w: unknown sender %q", model.ErrValidation, sender)
	}
	if err := s.ensureExists(ctx, conversationID); err != nil {
		return nil, err
	}

	message := &model.Message{
		ConversationID: conversationID,
		Text:           text,
		Sender:         sender,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ensureExists 会话不存在时返回 ErrNotFound
func (s *ConversationService) ensureExists(ctx context.Context, conversationID string) error {
	exists, err := s.conversationRepo.Exists(ctx, conversationID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("conversation %s: %w", conversationID, model.ErrNotFound)
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is empty", model.ErrValidation)
	}
	return title, nil
}
