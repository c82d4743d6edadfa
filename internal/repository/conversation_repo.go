// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ia-chat/internal/model"
	"ia-chat/pkg/util"
)

// ConversationRepository 会话数据访问层
// 负责 conversations 表的所有数据库操作
type ConversationRepository struct {
	db    *gorm.DB
	clock *util.Clock // 创建时间，同一实例内严格递增
}

// NewConversationRepository 创建 ConversationRepository 实例
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db, clock: util.NewClock()}
}

// Create 创建新会话
// 参数:
//   - ctx: 上下文
//   - conversation: 会话对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *ConversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = r.clock.Now()
	}
	if err := r.db.WithContext(ctx).Create(conversation).Error; err != nil {
		return storageErr("create conversation", err)
	}
	return nil
}

// GetByID 根据 ID 获取会话
// 参数:
//   - ctx: 上下文
//   - id: 会话ID
//
// 返回:
//   - *model.Conversation: 会话对象，未找到返回 nil
//   - error: 数据库错误
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("get conversation", err)
	}
	return &conversation, nil
}

// List 获取全部会话
// 按创建时间倒序排列（最新的在前），不分页
// 返回:
//   - []model.Conversation: 会话列表，没有数据时为空切片
//   - error: 数据库错误
func (r *ConversationRepository) List(ctx context.Context) ([]model.Conversation, error) {
	conversations := make([]model.Conversation, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC"). // 创建时间相同时保证顺序稳定
		Find(&conversations).Error
	if err != nil {
		return nil, storageErr("list conversations", err)
	}
	return conversations, nil
}

// GetLatest 获取最近创建的会话
// 返回:
//   - *model.Conversation: 最新会话，没有任何会话时返回 nil
//   - error: 数据库错误
func (r *ConversationRepository) GetLatest(ctx context.Context) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("get latest conversation", err)
	}
	return &conversation, nil
}

// UpdateTitle 更新会话标题
// 参数:
//   - ctx: 上下文
//   - id: 会话ID
//   - title: 新标题
//
// 返回:
//   - *model.Conversation: 更新后的会话，会话不存在时返回 nil
//   - error: 数据库错误
func (r *ConversationRepository) UpdateTitle(ctx context.Context, id, title string) (*model.Conversation, error) {
	// MySQL 在值未变化时 RowsAffected 为 0，所以这里不依赖它，更新后重新读取
	err := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error
	if err != nil {
		return nil, storageErr("update conversation title", err)
	}
	return r.GetByID(ctx, id)
}

// Delete 删除会话及其所有消息
// 外键已设置级联删除，这里仍在同一事务中显式删除消息，
// 保证在关闭了外键检查的数据库上也不会留下孤儿消息
// 参数:
//   - ctx: 上下文
//   - id: 会话ID
//
// 返回:
//   - bool: 是否删除了会话
//   - error: 数据库错误
func (r *ConversationRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Conversation{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, storageErr("delete conversation", err)
	}
	return deleted, nil
}

// Exists 判断会话是否存在
func (r *ConversationRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, storageErr("check conversation", err)
	}
	return count > 0, nil
}
