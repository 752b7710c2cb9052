package ai

import (
	"context"

	"github.com/stella-ai/edison/internal/model/chat"
)

// Responder produces a reply for a user message given the session's prior
// turns. Implementations never fail the request: provider errors are
// absorbed and surfaced as an in-band reply.
type Responder interface {
	Reply(ctx context.Context, history []chat.Message, userMessage string) string
}
