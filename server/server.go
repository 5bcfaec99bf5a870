package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
}

func New(port string, h *Handlers) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, middleware.Recoverer)

	// The chat platform calls from arbitrary origins.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", h.HandleStatus)
	r.Get("/health", h.HandleHealth)
	r.Get("/check", h.HandleCheckGet)
	r.Post("/check", h.HandleCheckPost)

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
	}
}

func (s *Server) Start() error {
	log.Printf("REST API listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	log.Println("Stopping REST API server...")
	return s.httpServer.Shutdown(ctx)
}
