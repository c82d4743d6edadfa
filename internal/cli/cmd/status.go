package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ia-chat/internal/cli/config"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "显示当前状态",
		Long: `显示当前连接状态和配置信息。

包括：
- 服务器地址及是否可用
- 当前会话`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := newClient()

			fmt.Fprintf(out, "服务器: %s\n", config.GetServerURL())
			fmt.Fprintf(out, "配置文件: %s\n", config.Path())
			if err := client.Health(); err != nil {
				fmt.Fprintf(out, "服务状态: ✗ %v\n", err)
			} else {
				fmt.Fprintln(out, "服务状态: ✓ 正常")
			}

			current := config.GetCurrentConversation()
			if current == "" {
				fmt.Fprintln(out, "当前会话: (无)")
				return nil
			}
			conversation, err := client.GetConversation(current)
			if err != nil {
				fmt.Fprintf(out, "当前会话: %s (%v)\n", current, err)
				return nil
			}
			fmt.Fprintf(out, "当前会话: %s (%s)\n", conversation.Title, conversation.ID)
			return nil
		},
	}
}
