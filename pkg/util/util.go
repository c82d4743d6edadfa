// Package util 提供通用工具函数
package util

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateID 生成实体 ID
// 使用 Google 的 uuid 库生成 UUID v4
// 返回:
//   - string: 标准格式 xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func GenerateID() string {
	return uuid.New().String()
}

// IsValidID 判断字符串是否为合法的 UUID
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Clock 生成写入数据库的时间戳
// 同一个 Clock 返回的时间严格递增，保证连续插入的记录时间戳不会相同
type Clock struct {
	mu   sync.Mutex
	last time.Time
}

// NewClock 创建 Clock
func NewClock() *Clock {
	return &Clock{}
}

// Now 返回截断到微秒的 UTC 时间
// 数据库只保存到微秒，截断后写入值与读回值一致
func (c *Clock) Now() time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !now.After(c.last) {
		now = c.last.Add(time.Microsecond)
	}
	c.last = now
	return now
}

// TruncateString 截断字符串到指定长度（按字符计）
// 如果字符串超过指定长度，截断并添加 "..."
// 参数:
//   - s: 原字符串
//   - maxLen: 最大长度
//
// 返回:
//   - string: 截断后的字符串
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsBlank 判断字符串去掉空白后是否为空
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
