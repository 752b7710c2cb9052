package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/stella-ai/edison/internal/model/chat"
)

// Placeholder answers with canned rule-based replies. It is used when no
// provider key is configured, so the service still works out of the box.
type Placeholder struct{}

// Reply matches the message against a small set of intents. Replies are
// deterministic for a given message.
func (Placeholder) Reply(_ context.Context, _ []chat.Message, userMessage string) string {
	lower := strings.ToLower(userMessage)

	switch {
	case containsAny(lower, "hello", "hi", "hey", "moshi"):
		return "Hello! I'm Edison, here to help you. What would you like to know?"
	case strings.Contains(lower, "stella"):
		return "Stella is currently unavailable, but I'm here to assist you with whatever you need!"
	case containsAny(lower, "who are you", "what are you", "introduce"):
		return "I am Edison, an AI assistant. Stella is unavailable right now, so I will be handling all your queries. I'm here to help answer questions, provide information, and assist you with various tasks!"
	case containsAny(lower, "help", "what can you do", "capabilities"):
		return "I can help you with various tasks such as:\n- Answering questions\n- Providing information\n- Having conversations\n- And much more!\n\nNote: this instance is running without a completion provider. Set an API key to get full AI capabilities."
	case strings.Contains(userMessage, "?"):
		return fmt.Sprintf("That's an interesting question! With a completion provider configured I would reason about it properly. For now, I'm acknowledging your question: '%s'", userMessage)
	default:
		return fmt.Sprintf("I understand you said: '%s'. This instance is running without a completion provider, so replies are canned. Set an API key to enable real responses.", userMessage)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
