package database_test

import (
	"testing"

	"ia-chat/internal/config"
	"ia-chat/internal/database"
	"ia-chat/internal/database/dbtest"
	"ia-chat/internal/model"

	"go.uber.org/zap"
)

func TestOpenRejectsBadConfig(t *testing.T) {
	tests := []config.DatabaseConfig{
		{Driver: config.DriverSQLite, DSN: ""},
		{Driver: "oracle", DSN: "whatever"},
	}
	for _, cfg := range tests {
		if _, err := database.Open(cfg, "release", zap.NewNop()); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestSchemaCascadesMessageDelete(t *testing.T) {
	db := dbtest.New(t)

	conv := model.Conversation{Title: "cascade"}
	if err := db.Create(&conv).Error; err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	msg := model.Message{ConversationID: conv.ID, Text: "hi", Sender: model.SenderUser}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("create message: %v", err)
	}

	// 只删除会话行，消息应由外键级联删除
	if err := db.Exec("DELETE FROM conversations WHERE id = ?", conv.ID).Error; err != nil {
		t.Fatalf("delete conversation: %v", err)
	}
	var count int64
	if err := db.Model(&model.Message{}).Where("conversation_id = ?", conv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade to remove messages, %d left", count)
	}
}

func TestSchemaRejectsOrphanMessage(t *testing.T) {
	db := dbtest.New(t)

	msg := model.Message{ConversationID: "00000000-0000-0000-0000-000000000000", Text: "orphan", Sender: model.SenderUser}
	if err := db.Create(&msg).Error; err == nil {
		t.Fatalf("expected foreign key violation for orphan message")
	}
}

func TestSchemaRejectsUnknownSender(t *testing.T) {
	db := dbtest.New(t)

	conv := model.Conversation{Title: "check"}
	if err := db.Create(&conv).Error; err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	msg := model.Message{ConversationID: conv.ID, Text: "x", Sender: model.Sender("system")}
	if err := db.Create(&msg).Error; err == nil {
		t.Fatalf("expected check constraint violation for sender %q", msg.Sender)
	}
}

func TestPing(t *testing.T) {
	if err := database.Ping(dbtest.New(t)); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
