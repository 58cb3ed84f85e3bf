package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/database"
	"github.com/xidlesync/xidlesync/internal/engine"
)

type Server struct {
	config  *config.Config
	handler *Handler
	server  *http.Server
}

func NewServer(cfg *config.Config, eng *engine.Engine, repo *database.Repository) *Server {
	handler := NewHandler(cfg, eng, repo)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
	}
}

func (s *Server) Start() error {
	log.Printf("Starting web server on http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return s.server.Addr
}
