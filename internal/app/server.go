package app

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"docquery/internal/api/handlers"
	appMiddleware "docquery/internal/api/middlewares"
	"docquery/internal/config"
	"docquery/internal/core/answer"
	ingestor "docquery/internal/core/ingestion_engine"
	"docquery/internal/core/interactive"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
//
// No request timeout middleware here: a run covers a document download,
// extraction and a batch of model calls, and cutting it off mid-flight
// would leave half-ingested work behind the same locator.
func NewServer(cfg *config.Config, ing *ingestor.Ingestor, ans *answer.Orchestrator, trivia *interactive.Client) *Server {
	qaHandler := handlers.NewQAHandler(ing, ans, trivia)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// public endpoints
	r.Get("/", qaHandler.Health)

	// protected endpoints
	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.BearerAuth(cfg.APIAuthKey))
			protected.Post("/qa/run", qaHandler.Run)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
