// Package config 负责加载和管理应用程序的配置
// 使用 viper 库支持 YAML 配置文件和环境变量覆盖
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 数据库驱动
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config 是应用程序的根配置结构
// 包含所有子配置模块
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`       // 服务器配置
	Database     DatabaseConfig     `mapstructure:"database"`     // 数据库配置
	AI           AIConfig           `mapstructure:"ai"`           // AI 服务配置
	Conversation ConversationConfig `mapstructure:"conversation"` // 会话配置
	Log          LogConfig          `mapstructure:"log"`          // 日志配置
}

// ServerConfig 服务器相关配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`             // 监听端口，默认 8080
	Mode            string        `mapstructure:"mode"`             // 运行模式: debug / release
	CORS            []string      `mapstructure:"cors"`             // CORS 允许的域名
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`     // 读超时
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`    // 写超时，必须大于 AI 回复耗时
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // 优雅关闭等待时间
}

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`         // sqlite / mysql / postgres，为空时根据 DSN 推断
	DSN          string `mapstructure:"dsn"`            // 连接串，sqlite 时为文件路径
	MaxIdleConns int    `mapstructure:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int    `mapstructure:"max_open_conns"` // 最大打开连接数
	MaxLifetime  int    `mapstructure:"max_lifetime"`   // 连接最大生命周期（秒）
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider       string `mapstructure:"provider"`         // openai / langchain
	APIKey         string `mapstructure:"api_key"`          // API Key
	BaseURL        string `mapstructure:"base_url"`         // OpenAI 兼容接口地址
	Model          string `mapstructure:"model"`            // 模型标识
	TitleMaxTokens int    `mapstructure:"title_max_tokens"` // 生成标题时的输出 token 上限
}

// ConversationConfig 会话相关配置
type ConversationConfig struct {
	DefaultTitle string `mapstructure:"default_title"` // 新建会话未指定标题时使用
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug/info/warn/error
	Format string `mapstructure:"format"` // 日志格式: json/console
}

// Load 从指定路径加载配置文件
// 支持 .env 文件和环境变量覆盖配置项
// 参数:
//   - configPath: 配置文件目录路径 (如 "./configs")
//
// 返回:
//   - *Config: 配置对象
//   - error: 如果加载失败则返回错误
func Load(configPath string) (*Config, error) {
	// .env 不存在不算错误，已有的环境变量优先
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// 启用环境变量
	// 例如: DATABASE_DRIVER -> database.driver
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVariables(v)
	setDefaults(v)

	// 读取配置文件（如果不存在则使用默认值和环境变量）
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = InferDriver(cfg.Database.DSN)
	}

	return &cfg, nil
}

// InferDriver 根据 DSN 推断数据库驱动
// postgres:// 和 postgresql:// 开头的连接串使用 postgres，其余按 SQLite 文件路径处理
func InferDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

// bindEnvVariables 绑定环境变量到配置项
// 第一个环境变量名优先，兼容前端项目原有的 PORT / DATABASE_URL / GEMINI_API_KEY
func bindEnvVariables(v *viper.Viper) {
	// 服务器配置
	v.BindEnv("server.port", "SERVER_PORT", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// 数据库配置
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")

	// AI 配置
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.api_key", "AI_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.model", "AI_MODEL")

	// 日志配置
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
}

// setDefaults 设置配置项的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// 数据库默认配置
	v.SetDefault("database.dsn", "ia-chat.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_lifetime", 3600)

	// AI 默认配置（Gemini 的 OpenAI 兼容接口）
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.title_max_tokens", 100)

	v.SetDefault("conversation.default_title", "Nova conversa")

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
