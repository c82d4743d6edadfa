package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ia-chat/internal/cli/api"
	"ia-chat/internal/cli/config"
)

const timeLayout = "2006-01-02 15:04"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部会话",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conversations, err := newClient().ListConversations()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(conversations) == 0 {
				fmt.Fprintln(out, "还没有会话，运行 'chatctl new' 创建一个")
				return nil
			}

			current := config.GetCurrentConversation()
			for _, c := range conversations {
				marker := " "
				if c.ID == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s  %s  %s\n", marker, c.ID, c.CreatedAt.Local().Format(timeLayout), c.Title)
			}
			return nil
		},
	}
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [title]",
		Short: "创建新会话并设为当前会话",
		RunE: func(cmd *cobra.Command, args []string) error {
			conversation, err := newClient().CreateConversation(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := config.SaveCurrentConversation(conversation.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ 已创建会话 %s (%s)\n", conversation.Title, conversation.ID)
			return nil
		},
	}
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "切换当前会话",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			id, err := resolveConversation(client, args[0])
			if err != nil {
				return err
			}
			conversation, err := client.GetConversation(id)
			if err != nil {
				return err
			}
			if err := config.SaveCurrentConversation(conversation.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ 当前会话: %s\n", conversation.Title)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "显示会话的全部消息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			id, err := resolveConversation(client, firstArg(args))
			if err != nil {
				return err
			}

			conversation, err := client.GetConversation(id)
			if err != nil {
				return err
			}
			messages, err := client.GetMessages(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n\n", conversation.Title)
			if len(messages) == 0 {
				fmt.Fprintln(out, "(没有消息)")
				return nil
			}
			for _, m := range messages {
				printMessage(cmd, m)
			}
			return nil
		},
	}
}

func newRenameCmd() *cobra.Command {
	var id string
	c := &cobra.Command{
		Use:   "rename <title>",
		Short: "修改会话标题",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			target, err := resolveConversation(client, id)
			if err != nil {
				return err
			}

			conversation, err := client.RenameConversation(target, strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ 标题已修改为 %s\n", conversation.Title)
			return nil
		},
	}
	c.Flags().StringVarP(&id, "conversation", "c", "", "会话 ID (默认: 当前会话)")
	return c
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "删除会话及其全部消息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			id, err := resolveConversation(client, args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteConversation(id); err != nil {
				return err
			}
			if config.GetCurrentConversation() == id {
				if err := config.SaveCurrentConversation(""); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ 已删除会话 %s\n", id)
			return nil
		},
	}
}

func printMessage(cmd *cobra.Command, m api.Message) {
	label := "你"
	if m.Sender == "assistant" {
		label = "AI"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s:\n%s\n\n", m.Timestamp.Local().Format(timeLayout), label, m.Text)
}
