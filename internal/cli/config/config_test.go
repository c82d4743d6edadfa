package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesDefaultConfig(t *testing.T) {
	t.Setenv("IA_CHAT_SERVER_URL", "")
	dir := filepath.Join(t.TempDir(), "ia-chat")

	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Path() != filepath.Join(dir, "config.yaml") {
		t.Fatalf("unexpected config path %q", Path())
	}
	if got := GetServerURL(); got != DefaultServerURL {
		t.Fatalf("server url = %q, want %q", got, DefaultServerURL)
	}
	if got := GetCurrentConversation(); got != "" {
		t.Fatalf("expected no current conversation, got %q", got)
	}
}

func TestCurrentConversationPersists(t *testing.T) {
	t.Setenv("IA_CHAT_SERVER_URL", "")
	dir := t.TempDir()

	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := SaveCurrentConversation("abc-123"); err != nil {
		t.Fatalf("SaveCurrentConversation: %v", err)
	}

	if err := Init(dir); err != nil {
		t.Fatalf("Init again: %v", err)
	}
	if got := GetCurrentConversation(); got != "abc-123" {
		t.Fatalf("current conversation = %q, want abc-123", got)
	}
}

func TestServerURLOverrides(t *testing.T) {
	t.Setenv("IA_CHAT_SERVER_URL", "http://chat.internal:9000")

	if err := Init(t.TempDir()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := GetServerURL(); got != "http://chat.internal:9000" {
		t.Fatalf("env override not applied, got %q", got)
	}

	SetServerURL("http://flag:1")
	if got := GetServerURL(); got != "http://flag:1" {
		t.Fatalf("flag override not applied, got %q", got)
	}
}

func TestOverridesAreNotPersisted(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("IA_CHAT_SERVER_URL", "http://env:2")
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	SetServerURL("http://flag:1")
	if err := SaveCurrentConversation("abc"); err != nil {
		t.Fatalf("SaveCurrentConversation: %v", err)
	}

	t.Setenv("IA_CHAT_SERVER_URL", "")
	if err := Init(dir); err != nil {
		t.Fatalf("Init again: %v", err)
	}
	if got := GetServerURL(); got != DefaultServerURL {
		t.Fatalf("override leaked into config file: server url = %q", got)
	}
	if got := GetCurrentConversation(); got != "abc" {
		t.Fatalf("current conversation = %q, want abc", got)
	}
}

func TestSaveKeepsFileServerURL(t *testing.T) {
	t.Setenv("IA_CHAT_SERVER_URL", "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  url: http://saved:3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	SetServerURL("http://flag:1")
	if err := SaveCurrentConversation("xyz"); err != nil {
		t.Fatalf("SaveCurrentConversation: %v", err)
	}

	if err := Init(dir); err != nil {
		t.Fatalf("Init again: %v", err)
	}
	if got := GetServerURL(); got != "http://saved:3" {
		t.Fatalf("server url = %q, want http://saved:3", got)
	}
	if got := GetCurrentConversation(); got != "xyz" {
		t.Fatalf("current conversation = %q, want xyz", got)
	}
}
