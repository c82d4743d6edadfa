// Package config 管理 CLI 客户端配置
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultServerURL 默认服务器地址
const DefaultServerURL = "http://localhost:8080"

// Config CLI 配置结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Chat   ChatConfig   `mapstructure:"chat"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	URL string `mapstructure:"url"` // HTTP API 地址
}

// ChatConfig 对话状态
type ChatConfig struct {
	CurrentConversation string `mapstructure:"current_conversation"` // 当前会话 ID
}

var (
	cfg        *Config
	configPath string
)

// DefaultDir 返回默认配置目录 ~/.ia-chat
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户目录失败: %w", err)
	}
	return filepath.Join(home, ".ia-chat"), nil
}

// Init 初始化配置
// 参数:
//   - configDir: 配置目录，为空时使用 ~/.ia-chat
func Init(configDir string) error {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}
	configPath = filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("server.url", DefaultServerURL)
	v.SetDefault("chat.current_conversation", "")

	// IA_CHAT_SERVER_URL 覆盖配置文件
	v.BindEnv("server.url", "IA_CHAT_SERVER_URL")

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile 时文件不存在返回的是 fs 错误
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("读取配置失败: %w", err)
		}
		if err := writeDefaults(); err != nil {
			return err
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	return nil
}

// writeDefaults 创建只包含默认值的配置文件
func writeDefaults() error {
	file := viper.New()
	file.SetConfigType("yaml")
	file.SetDefault("server.url", DefaultServerURL)
	file.SetDefault("chat.current_conversation", "")
	if err := file.SafeWriteConfigAs(configPath); err != nil {
		return fmt.Errorf("写入默认配置失败: %w", err)
	}
	return nil
}

// Path 返回配置文件路径
func Path() string {
	return configPath
}

// GetServerURL 获取服务器地址
func GetServerURL() string {
	if cfg == nil || cfg.Server.URL == "" {
		return DefaultServerURL
	}
	return cfg.Server.URL
}

// SetServerURL 设置本次运行使用的服务器地址，不写入文件
func SetServerURL(url string) {
	if cfg != nil {
		cfg.Server.URL = url
	}
}

// GetCurrentConversation 获取当前会话 ID
func GetCurrentConversation() string {
	if cfg == nil {
		return ""
	}
	return cfg.Chat.CurrentConversation
}

// SaveCurrentConversation 保存当前会话 ID
// 只在文件原有内容上修改这一项，环境变量和命令行参数不会被写入
func SaveCurrentConversation(id string) error {
	if cfg == nil {
		return errors.New("配置未初始化")
	}

	file := viper.New()
	file.SetConfigFile(configPath)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("读取配置失败: %w", err)
	}
	file.Set("chat.current_conversation", id)
	if err := file.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("保存配置失败: %w", err)
	}

	cfg.Chat.CurrentConversation = id
	return nil
}
