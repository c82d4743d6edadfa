package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ia-chat/internal/llm"
	"ia-chat/internal/model"
)

// fakeProvider 记录收到的请求并返回预设结果
type fakeProvider struct {
	reply    string
	err      error
	requests []llm.CompletionRequest
	ctxErr   error
	onCall   func()
}

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	f.ctxErr = ctx.Err()
	if f.onCall != nil {
		f.onCall()
	}
	return f.reply, f.err
}

func newChatService(t *testing.T, provider *fakeProvider) (*ChatService, *ConversationService) {
	t.Helper()
	store := newConversationService(t)
	return NewChatService(store, provider, "test-model", 100, zap.NewNop()), store
}

func countMessages(t *testing.T, s *ConversationService, id string) int {
	t.Helper()
	msgs, err := s.GetMessages(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	return len(msgs)
}

func TestRequestAssistantReply(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{reply: "Olá! Como posso ajudar?"}
	chat, store := newChatService(t, provider)

	conv := mustCreate(t, store, "Chat")
	for _, m := range []struct {
		text   string
		sender model.Sender
	}{
		{"oi", model.SenderUser},
		{"olá", model.SenderAssistant},
		{"tudo bem?", model.SenderUser},
	} {
		if _, err := store.AddMessage(ctx, conv.ID, m.text, m.sender); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
	}

	reply, err := chat.RequestAssistantReply(ctx, conv.ID)
	if err != nil {
		t.Fatalf("RequestAssistantReply: %v", err)
	}
	if reply.Sender != model.SenderAssistant || reply.Text != provider.reply || reply.ConversationID != conv.ID {
		t.Fatalf("unexpected reply %+v", reply)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected one provider call, got %d", len(provider.requests))
	}
	req := provider.requests[0]
	if req.Model != "test-model" {
		t.Fatalf("unexpected model %q", req.Model)
	}
	want := []llm.Turn{
		{Role: llm.RoleUser, Content: "oi"},
		{Role: llm.RoleAssistant, Content: "olá"},
		{Role: llm.RoleUser, Content: "tudo bem?"},
	}
	if len(req.Turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(req.Turns))
	}
	for i := range want {
		if req.Turns[i] != want[i] {
			t.Fatalf("turn %d = %+v, want %+v", i, req.Turns[i], want[i])
		}
	}

	msgs, err := store.GetMessages(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 4 || msgs[3].ID != reply.ID {
		t.Fatalf("reply should be the last message, got %+v", msgs)
	}
}

func TestRequestAssistantReplyEmptyHistory(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	chat, store := newChatService(t, provider)
	conv := mustCreate(t, store, "Empty")

	if _, err := chat.RequestAssistantReply(context.Background(), conv.ID); !errors.Is(err, model.ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if len(provider.requests) != 0 {
		t.Fatalf("provider must not be called for an empty history")
	}
	if n := countMessages(t, store, conv.ID); n != 0 {
		t.Fatalf("expected message count unchanged, got %d", n)
	}
}

func TestRequestAssistantReplyUnknownConversation(t *testing.T) {
	chat, _ := newChatService(t, &fakeProvider{reply: "unused"})

	if _, err := chat.RequestAssistantReply(context.Background(), "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestAssistantReplyFailuresDoNotWrite(t *testing.T) {
	upstream := errors.New("quota exceeded")
	tests := []struct {
		name     string
		provider *fakeProvider
		want     error
	}{
		{"provider error", &fakeProvider{err: upstream}, model.ErrProvider},
		{"empty text", &fakeProvider{reply: ""}, model.ErrEmptyCompletion},
		{"whitespace text", &fakeProvider{reply: " \n\t "}, model.ErrEmptyCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat, store := newChatService(t, tt.provider)
			conv := mustCreate(t, store, "Chat")
			if _, err := store.AddMessage(context.Background(), conv.ID, "hi", model.SenderUser); err != nil {
				t.Fatalf("AddMessage: %v", err)
			}

			_, err := chat.RequestAssistantReply(context.Background(), conv.ID)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.provider.err != nil && !errors.Is(err, tt.provider.err) {
				t.Fatalf("provider cause should stay inspectable, got %v", err)
			}
			if n := countMessages(t, store, conv.ID); n != 1 {
				t.Fatalf("expected no write, message count = %d", n)
			}
		})
	}
}

func TestRequestAssistantReplyIgnoresCallerCancellation(t *testing.T) {
	provider := &fakeProvider{reply: "still here"}
	chat, store := newChatService(t, provider)
	conv := mustCreate(t, store, "Chat")
	if _, err := store.AddMessage(context.Background(), conv.ID, "hi", model.SenderUser); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := chat.RequestAssistantReply(ctx, conv.ID); err != nil {
		t.Fatalf("RequestAssistantReply: %v", err)
	}
	if provider.ctxErr != nil {
		t.Fatalf("provider saw cancelled context: %v", provider.ctxErr)
	}
	if n := countMessages(t, store, conv.ID); n != 2 {
		t.Fatalf("expected reply to be persisted, got %d messages", n)
	}
}

func TestGenerateTitle(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{reply: "\"Receita de pão caseiro\"\nextra line"}
	chat, store := newChatService(t, provider)
	conv := mustCreate(t, store, "Nova conversa")
	if _, err := store.AddMessage(ctx, conv.ID, "como faço pão?", model.SenderUser); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	updated, err := chat.GenerateTitle(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GenerateTitle: %v", err)
	}
	if updated.Title != "Receita de pão caseiro" {
		t.Fatalf("unexpected title %q", updated.Title)
	}

	req := provider.requests[0]
	if req.MaxTokens != 100 || len(req.Turns) != 1 || req.Turns[0].Role != llm.RoleUser {
		t.Fatalf("unexpected title request %+v", req)
	}

	got, err := store.GetConversation(ctx, conv.ID)
	if err != nil || got.Title != "Receita de pão caseiro" {
		t.Fatalf("title not persisted: %+v, %v", got, err)
	}
	if n := countMessages(t, store, conv.ID); n != 1 {
		t.Fatalf("title generation must not add messages, got %d", n)
	}
}

func TestGenerateTitleErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		chat, store := newChatService(t, &fakeProvider{reply: "x"})
		conv := mustCreate(t, store, "Chat")
		if _, err := chat.GenerateTitle(ctx, conv.ID); !errors.Is(err, model.ErrEmptyHistory) {
			t.Fatalf("expected ErrEmptyHistory, got %v", err)
		}
	})

	t.Run("quotes only", func(t *testing.T) {
		chat, store := newChatService(t, &fakeProvider{reply: "\"\"\n  "})
		conv := mustCreate(t, store, "Chat")
		if _, err := store.AddMessage(ctx, conv.ID, "hi", model.SenderUser); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
		if _, err := chat.GenerateTitle(ctx, conv.ID); !errors.Is(err, model.ErrEmptyCompletion) {
			t.Fatalf("expected ErrEmptyCompletion, got %v", err)
		}
		got, _ := store.GetConversation(ctx, conv.ID)
		if got.Title != "Chat" {
			t.Fatalf("title must stay unchanged, got %q", got.Title)
		}
	})

	t.Run("deleted during call", func(t *testing.T) {
		provider := &fakeProvider{reply: "Title"}
		chat, store := newChatService(t, provider)
		conv := mustCreate(t, store, "Chat")
		if _, err := store.AddMessage(ctx, conv.ID, "hi", model.SenderUser); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
		provider.onCall = func() {
			if _, err := store.DeleteConversation(ctx, conv.ID); err != nil {
				t.Errorf("DeleteConversation: %v", err)
			}
		}
		if _, err := chat.GenerateTitle(ctx, conv.ID); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Simple title", "Simple title"},
		{"  \"Quoted\"  ", "Quoted"},
		{"\n\n**Bold title**\nsecond", "Bold title"},
		{"# Heading", "Heading"},
		{"Title: Pão caseiro", "Pão caseiro"},
		{"“Aspas curvas”", "Aspas curvas"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
