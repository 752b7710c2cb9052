package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stella-ai/edison/internal/config"
	"github.com/stella-ai/edison/internal/model/chat"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const stubCompletion = `{
	"id": "chatcmpl-test",
	"object": "chat.completion",
	"choices": [
		{
			"index": 0,
			"message": {"role": "assistant", "content": "the reply"},
			"finish_reason": "stop"
		}
	]
}`

func newStubProvider(t *testing.T, got *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("failed to decode provider request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stubCompletion)
	}))
}

func TestServiceReplyReplaysHistory(t *testing.T) {
	var got capturedRequest
	stub := newStubProvider(t, &got)
	defer stub.Close()

	svc := NewService(config.AIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: stub.URL,
	})

	history := []chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
	}

	reply := svc.Reply(context.Background(), history, "how are you?")
	if reply != "the reply" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if got.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", got.Model)
	}

	// system prompt, two prior turns, then the new user message.
	if len(got.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" {
		t.Fatalf("expected leading system message, got role %q", got.Messages[0].Role)
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "hi" {
		t.Fatalf("unexpected first history turn: %+v", got.Messages[1])
	}
	if got.Messages[2].Role != "assistant" || got.Messages[2].Content != "hello" {
		t.Fatalf("unexpected second history turn: %+v", got.Messages[2])
	}
	if got.Messages[3].Role != "user" || got.Messages[3].Content != "how are you?" {
		t.Fatalf("unexpected trailing user message: %+v", got.Messages[3])
	}
}

func TestServiceReplyCapsHistory(t *testing.T) {
	var got capturedRequest
	stub := newStubProvider(t, &got)
	defer stub.Close()

	svc := NewService(config.AIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: stub.URL})

	history := make([]chat.Message, 0, 30)
	for i := 0; i < 30; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		history = append(history, chat.Message{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	svc.Reply(context.Background(), history, "latest")

	// system + capped history + new user message.
	if len(got.Messages) != historyLimit+2 {
		t.Fatalf("expected %d messages, got %d", historyLimit+2, len(got.Messages))
	}
	if got.Messages[1].Content != "turn 20" {
		t.Fatalf("expected oldest replayed turn to be 'turn 20', got %q", got.Messages[1].Content)
	}
}

func TestServiceReplyFallsBackOnProviderError(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer stub.Close()

	svc := NewService(config.AIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: stub.URL})

	reply := svc.Reply(context.Background(), nil, "hi")
	if reply != fallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
}

func TestServiceReplyFallsBackOnEmptyChoices(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "chatcmpl-test", "object": "chat.completion", "choices": []}`)
	}))
	defer stub.Close()

	svc := NewService(config.AIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: stub.URL})

	reply := svc.Reply(context.Background(), nil, "hi")
	if reply != fallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
}
