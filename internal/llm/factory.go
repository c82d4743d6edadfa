package llm

import (
	"fmt"
	"strings"

	"ia-chat/internal/config"
)

// Provider 类型
const (
	ProviderOpenAI    = "openai"
	ProviderLangchain = "langchain"
)

// NewProvider 按配置创建补全服务
// 参数:
//   - cfg: AI 配置
//
// 返回:
//   - Provider: 补全服务，缺少 API Key 时返回一个调用即报错的占位实现
//   - error: provider 名称非法或初始化失败
func NewProvider(cfg config.AIConfig) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name != ProviderOpenAI && name != ProviderLangchain {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return unconfigured{}, nil
	}

	switch name {
	case ProviderLangchain:
		return NewLangchain(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return NewOpenAI(cfg.APIKey, cfg.BaseURL), nil
	}
}
