package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stella-ai/edison/internal/model/chat"
)

// Store exposes per-session conversation history to HTTP handlers.
//
// Unknown session ids are never an error: History returns an empty slice,
// Clear is a no-op, and Append creates the session on first use.
type Store interface {
	Append(ctx context.Context, sessionID string, msg chat.Message) chat.Message
	History(ctx context.Context, sessionID string) []chat.Message
	Clear(ctx context.Context, sessionID string)
}

// MemoryStore implements Store with a mutex-guarded map, suitable for a
// single-process deployment. Sessions live until the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Message
}

// NewMemoryStore bootstraps an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]chat.Message)}
}

// Append stamps the message with an id and timestamp and adds it to the
// session, creating the session on first reference. It returns the stored
// message.
func (s *MemoryStore) Append(_ context.Context, sessionID string, msg chat.Message) chat.Message {
	msg.ID = uuid.NewString()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	s.mu.Unlock()

	return msg
}

// History returns a copy of the session's messages in insertion order.
func (s *MemoryStore) History(_ context.Context, sessionID string) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.sessions[sessionID]
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied
}

// Clear resets the session's history to empty.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
