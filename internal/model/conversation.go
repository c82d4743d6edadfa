// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"

	"gorm.io/gorm"

	"ia-chat/pkg/util"
)

// Conversation 会话模型
// 对应数据库表 conversations
// 表示一个有标题的对话线程，包含零条或多条按时间排序的消息
type Conversation struct {
	// ID 会话唯一标识，创建时由服务端生成的 UUID，不可修改
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Title 会话标题，不能为空
	// 可以由用户重命名，也可以由 AI 根据对话内容生成
	Title string `gorm:"type:text;not null" json:"title"`

	// CreatedAt 创建时间，创建后不可修改
	// 会话列表按此字段倒序排列
	CreatedAt time.Time `gorm:"precision:6;not null;index" json:"created_at"`

	// Messages 会话中的所有消息（一对多关系）
	// 删除会话时由数据库级联删除
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate 在插入前生成 ID 和创建时间
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = util.GenerateID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	return nil
}
