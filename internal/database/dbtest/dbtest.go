// Package dbtest 为测试提供迁移好的内存 SQLite 数据库
package dbtest

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ia-chat/internal/config"
	"ia-chat/internal/database"
	"ia-chat/pkg/util"
)

// New 打开一个独立的内存数据库并完成迁移，测试结束时自动关闭
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + util.GenerateID() + "?mode=memory&cache=shared",
	}
	db, err := database.Open(cfg, "release", zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
