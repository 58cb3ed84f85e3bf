package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/database"
	"github.com/xidlesync/xidlesync/internal/engine"
)

type Handler struct {
	config *config.Config
	engine *engine.Engine
	repo   *database.Repository // nil when the journal is disabled
}

func NewHandler(cfg *config.Config, eng *engine.Engine, repo *database.Repository) *Handler {
	return &Handler{
		config: cfg,
		engine: eng,
		repo:   repo,
	}
}

// Routes returns the chi router with all endpoints mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", h.handleHealth)
	r.Get("/api/status", h.handleStatus)
	r.Get("/api/transitions", h.handleTransitions)
	r.Get("/api/errors", h.handleErrors)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Status())
}

func (h *Handler) handleTransitions(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		http.Error(w, "journal is disabled", http.StatusNotFound)
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	transitions, err := h.repo.RecentTransitions(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, transitions)
}

func (h *Handler) handleErrors(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		http.Error(w, "journal is disabled", http.StatusNotFound)
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	logs, err := h.repo.RecentErrors(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logs)
}

func parseLimit(s string) int {
	if s == "" {
		return 0
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
