package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Dir      string // directory containing the generated site
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server serves a generated deck site and pushes reload notifications.
type Server struct {
	cfg        Config
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for the site in cfg.Dir.
func New(cfg Config) *Server {
	s := &Server{
		cfg: cfg,
		hub: NewHub(),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Live reload connections stay open, so they sit outside the timeout.
	r.Get("/livereload", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Handle("/*", http.FileServer(http.Dir(s.cfg.Dir)))
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Reload tells every connected page to reload.
func (s *Server) Reload() int { return s.hub.Broadcast(ReloadMessage) }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("autodeck server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and drops live reload clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
