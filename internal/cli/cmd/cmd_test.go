package cmd

import (
	"bytes"
	"strings"
	"testing"

	"ia-chat/internal/cli/clitest"
	"ia-chat/internal/cli/config"
)

type cli struct {
	server    *clitest.Server
	configDir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("IA_CHAT_SERVER_URL", "")
	return &cli{server: clitest.NewServer(t), configDir: t.TempDir()}
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", c.server.URL, "--config-dir", c.configDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(t, args...)
	if err != nil {
		t.Fatalf("chatctl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestSendUsesLatestConversation(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(t, "send", "olá", "mundo")
	if !strings.Contains(out, "olá mundo") || !strings.Contains(out, c.server.Provider.Reply) {
		t.Fatalf("unexpected send output:\n%s", out)
	}
	current := config.GetCurrentConversation()
	if current == "" {
		t.Fatalf("send should remember the conversation it opened")
	}

	out = c.mustRun(t, "show")
	if !strings.Contains(out, "# Nova conversa") || strings.Count(out, "\n[") < 1 {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	out = c.mustRun(t, "list")
	if !strings.Contains(out, "* "+current) {
		t.Fatalf("current conversation should be marked:\n%s", out)
	}
}

func TestNewRenameTitleDelete(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(t, "new", "Minha", "conversa")
	if !strings.Contains(out, "Minha conversa") {
		t.Fatalf("unexpected new output:\n%s", out)
	}
	id := config.GetCurrentConversation()

	out = c.mustRun(t, "rename", "Outra")
	if !strings.Contains(out, "Outra") {
		t.Fatalf("unexpected rename output:\n%s", out)
	}

	if _, err := c.run(t, "title"); err == nil {
		t.Fatalf("title on an empty conversation should fail")
	}

	c.mustRun(t, "send", "receita de bolo")
	c.server.Provider.Reply = "Bolo de cenoura"
	out = c.mustRun(t, "title", id)
	if !strings.Contains(out, "Bolo de cenoura") {
		t.Fatalf("unexpected title output:\n%s", out)
	}

	c.mustRun(t, "delete", id)
	if got := config.GetCurrentConversation(); got != "" {
		t.Fatalf("deleting the current conversation should clear it, got %q", got)
	}
	if _, err := c.run(t, "use", id); err == nil {
		t.Fatalf("use on a deleted conversation should fail")
	}
}

func TestStatus(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(t, "status")
	if !strings.Contains(out, c.server.URL) || !strings.Contains(out, "✓") || !strings.Contains(out, "(无)") {
		t.Fatalf("unexpected status output:\n%s", out)
	}
}

func TestRejectsMalformedID(t *testing.T) {
	c := newCLI(t)

	for _, args := range [][]string{{"show", "nope"}, {"delete", "nope"}, {"use", "nope"}} {
		out, err := c.run(t, args...)
		if err == nil || !strings.Contains(err.Error(), "无效的会话 ID") {
			t.Fatalf("chatctl %s: expected invalid id error, got %v\n%s", strings.Join(args, " "), err, out)
		}
	}
}
