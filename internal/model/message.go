// Package model 定义了与数据库表对应的数据结构
package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"ia-chat/pkg/util"
)

// Sender 消息发送方
type Sender string

// Sender 取值，数据库中只允许这两种
const (
	SenderUser      Sender = "user"      // 用户发送的消息
	SenderAssistant Sender = "assistant" // AI 助手的回复
)

// ParseSender 将字符串解析为 Sender
func ParseSender(s string) (Sender, error) {
	switch Sender(s) {
	case SenderUser, SenderAssistant:
		return Sender(s), nil
	default:
		return "", fmt.Errorf("%w: unknown sender %q", ErrValidation, s)
	}
}

// Valid 判断是否为合法的发送方
func (s Sender) Valid() bool {
	_, err := ParseSender(string(s))
	return err == nil
}

// Message 消息模型
// 对应数据库表 messages
// 消息写入后不再修改，只会随会话一起被级联删除
type Message struct {
	// ID 消息唯一标识，创建时由服务端生成的 UUID
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// ConversationID 所属会话ID，外键关联 conversations.id
	ConversationID string `gorm:"size:36;not null;index:idx_messages_conversation_time,priority:1" json:"conversation_id"`

	// Text 消息内容，不能为空
	Text string `gorm:"type:text;not null" json:"text"`

	// Sender 发送方
	// user: 用户
	// assistant: AI 助手
	Sender Sender `gorm:"size:16;not null;check:chk_messages_sender,sender IN ('user','assistant')" json:"sender"`

	// Timestamp 消息创建时间，会话内消息按此字段正序排列
	Timestamp time.Time `gorm:"precision:6;not null;index:idx_messages_conversation_time,priority:2" json:"timestamp"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate 在插入前生成 ID 和时间戳
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = util.GenerateID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC().Truncate(time.Microsecond)
	}
	return nil
}
