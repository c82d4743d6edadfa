package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var id string
	c := &cobra.Command{
		Use:   "send <text>",
		Short: "发送消息并等待 AI 回复",
		Long: `发送一条用户消息，然后请求 AI 回复。

AI 请求失败时用户消息仍然保留，可以稍后重新运行 'chatctl send' 或查看 'chatctl show'。`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("消息不能为空")
			}

			client := newClient()
			target, err := resolveConversation(client, id)
			if err != nil {
				return err
			}

			sent, err := client.SendMessage(target, text)
			if err != nil {
				return err
			}
			printMessage(cmd, *sent)

			reply, err := client.RequestReply(target)
			if err != nil {
				return fmt.Errorf("获取 AI 回复失败: %w", err)
			}
			printMessage(cmd, *reply)
			return nil
		},
	}
	c.Flags().StringVarP(&id, "conversation", "c", "", "会话 ID (默认: 当前会话)")
	return c
}

func newTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title [id]",
		Short: "让 AI 根据对话内容生成标题",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			id, err := resolveConversation(client, firstArg(args))
			if err != nil {
				return err
			}

			conversation, err := client.GenerateTitle(id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ 新标题: %s\n", conversation.Title)
			return nil
		},
	}
}
