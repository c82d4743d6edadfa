// Package cmd 实现 CLI 命令
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ia-chat/internal/cli/api"
	"ia-chat/internal/cli/config"
	"ia-chat/pkg/util"
)

// NewRootCommand 创建根命令及全部子命令
func NewRootCommand() *cobra.Command {
	var (
		server    string
		configDir string
	)

	root := &cobra.Command{
		Use:   "chatctl",
		Short: "ia-chat 命令行客户端",
		Long: `ia-chat 命令行客户端

在终端里管理会话、发送消息并获取 AI 回复。
不指定会话时使用当前会话，没有当前会话时打开最新的会话。`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(configDir); err != nil {
				return fmt.Errorf("初始化配置失败: %w", err)
			}
			// 如果指定了服务器地址，覆盖配置
			if server != "" {
				config.SetServerURL(server)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&server, "server", "s", "", "服务器地址 (默认: "+config.DefaultServerURL+")")
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "配置目录 (默认: ~/.ia-chat)")

	root.AddCommand(
		newListCmd(),
		newNewCmd(),
		newUseCmd(),
		newShowCmd(),
		newSendCmd(),
		newRenameCmd(),
		newDeleteCmd(),
		newTitleCmd(),
		newStatusCmd(),
	)
	return root
}

// Execute 执行根命令
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func newClient() *api.Client {
	return api.NewClient(config.GetServerURL())
}

// resolveConversation 确定命令作用的会话
// 优先使用参数，其次是当前会话，最后打开最新会话并记为当前会话
func resolveConversation(client *api.Client, id string) (string, error) {
	if id != "" {
		if !util.IsValidID(id) {
			return "", fmt.Errorf("无效的会话 ID: %s", id)
		}
		return id, nil
	}
	if current := config.GetCurrentConversation(); current != "" {
		return current, nil
	}

	latest, err := client.OpenLatest()
	if err != nil {
		return "", err
	}
	if err := config.SaveCurrentConversation(latest.ID); err != nil {
		return "", err
	}
	return latest.ID, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
