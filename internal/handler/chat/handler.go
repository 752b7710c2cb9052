package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stella-ai/edison/internal/model/chat"
	"github.com/stella-ai/edison/internal/service/ai"
	chatservice "github.com/stella-ai/edison/internal/service/chat"
	"github.com/stella-ai/edison/pkg/utils"
)

// Handler serves the chat API backed by a session store and a responder.
type Handler struct {
	store     chatservice.Store
	responder ai.Responder
}

// New creates a chat handler.
func New(store chatservice.Store, responder ai.Responder) *Handler {
	return &Handler{
		store:     store,
		responder: responder,
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/chat/clear", h.handleClear)
	r.Get("/chat/history/{sessionID}", h.handleHistory)
}

// handleChat appends the user turn, generates a reply against the prior
// history, appends the assistant turn, and returns the reply.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx := r.Context()

	// The responder sees the history as it stood before this message.
	history := h.store.History(ctx, payload.SessionID)

	userMsg := h.store.Append(ctx, payload.SessionID, chat.Message{
		Role:    chat.RoleUser,
		Content: payload.Message,
	})

	reply := h.responder.Reply(ctx, history, payload.Message)

	h.store.Append(ctx, payload.SessionID, chat.Message{
		Role:    chat.RoleAssistant,
		Content: reply,
	})

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"reply":      reply,
		"session_id": payload.SessionID,
		"timestamp":  userMsg.Timestamp.Format(time.RFC3339),
	})
}

// handleClear resets a session's history. Unknown sessions are a no-op.
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	h.store.Clear(r.Context(), payload.SessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Chat history cleared",
	})
}

// handleHistory returns the stored turns for a session, oldest first.
// Unknown sessions yield an empty list rather than an error.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages := h.store.History(r.Context(), sessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   messages,
	})
}
