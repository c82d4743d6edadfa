// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ia-chat/internal/model"
	"ia-chat/pkg/util"
)

// MessageRepository 消息数据访问层
// 负责消息相关的所有数据库操作，消息写入后不会再修改
type MessageRepository struct {
	db    *gorm.DB
	clock *util.Clock // 消息时间戳，同一实例内严格递增
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db, clock: util.NewClock()}
}

// Create 创建新消息
// 参数:
//   - ctx: 上下文
//   - message: 消息对象，ID 和 Timestamp 会被自动填充
//
// 返回:
//   - error: 数据库错误（包括会话不存在导致的外键冲突）
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = r.clock.Now()
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return storageErr("create message", err)
	}
	return nil
}

// ListByConversationID 获取会话的所有消息
// 按时间正序排列（最早的在前），不分页
// 参数:
//   - ctx: 上下文
//   - conversationID: 会话ID
//
// 返回:
//   - []model.Message: 消息列表，没有消息时为空切片
//   - error: 数据库错误
func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID string) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}). // timestamp 是关键字，交给方言加引号
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, storageErr("list messages", err)
	}
	return messages, nil
}

// CountByConversationID 统计会话的消息数量
func (r *MessageRepository) CountByConversationID(ctx context.Context, conversationID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, storageErr("count messages", err)
	}
	return count, nil
}
