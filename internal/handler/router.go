package handler

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stella-ai/edison/internal/handler/chat"
	middlewarePkg "github.com/stella-ai/edison/internal/middleware"
	"github.com/stella-ai/edison/internal/service/ai"
	chatService "github.com/stella-ai/edison/internal/service/chat"
	"github.com/stella-ai/edison/pkg/utils"
)

//go:embed static/index.html
var staticFS embed.FS

// NewRouter wires HTTP routes to core services.
func NewRouter(store chatService.Store, responder ai.Responder) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(store, responder)

	r.Get("/", handleIndex)
	r.Get("/health", handleHealth)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
	})

	return r
}

// handleIndex serves the embedded single-page chat UI.
func handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "ui unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleHealth is a constant liveness probe.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "edison",
	})
}
