package model

import "errors"

// 业务错误分类
// 各层用 %w 包装后向上传递，调用方通过 errors.Is 判断
var (
	ErrValidation      = errors.New("validation failed")            // 标题或内容为空等参数错误，写入前拒绝
	ErrNotFound        = errors.New("not found")                    // 目标会话不存在
	ErrEmptyHistory    = errors.New("conversation has no messages") // 对没有消息的会话调用 AI
	ErrEmptyCompletion = errors.New("provider returned no text")    // AI 没有返回可用内容
	ErrStorage         = errors.New("storage failure")              // 数据库不可用或约束冲突
	ErrProvider        = errors.New("completion provider failure")  // 调用 AI 服务失败
)
