package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jpspell/premier-squares-service/internal/config"
	"github.com/jpspell/premier-squares-service/internal/service"
)

// NewRouter assembles the full HTTP surface: middleware stack, contest and
// winner routes, and the health check.
func NewRouter(cfg config.Config, contests *service.ContestService, winners *service.WinnerService) http.Handler {
	contestHandler := NewContestHandler(contests)
	winnerHandler := NewWinnerHandler(winners)
	healthHandler := NewHealthHandler()

	var counter RateCounter
	if cfg.RateLimitPerMinute > 0 {
		counter = NewMemoryRateCounter(cfg.RateLimitPerMinute, time.Minute)
	}

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(SecurityHeaders)
	r.Use(BodyLimit(cfg.MaxBodyBytes))
	r.Use(RateLimit(counter))
	r.Use(CORS(cfg.CORSAllowedOrigins).Handler)

	// Health
	r.Get("/health", healthHandler.Health)

	// API routes
	r.Route("/contests", func(r chi.Router) {
		r.Post("/", contestHandler.Create)
		r.Get("/", contestHandler.List)
		r.Get("/{id}", contestHandler.Get)
		r.Put("/{id}", contestHandler.UpdateNames)
		r.Post("/{id}/start", contestHandler.Start)
	})

	r.Route("/bagbuilder", func(r chi.Router) {
		r.Post("/winner/{name}", winnerHandler.SetWinner)
		r.Get("/winner", winnerHandler.GetWinner)
	})

	return r
}
