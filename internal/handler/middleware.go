package handler

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/jpspell/premier-squares-service/internal/model"
)

// Logger is a structured access-log middleware.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", r.RemoteAddr,
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// SecurityHeaders sets the standard defensive response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// BodyLimit caps request body size. Oversized bodies surface as decode errors
// in the handlers.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS builds the CORS wrapper from the configured origins.
func CORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
}

// RateCounter decides whether a client identified by key may proceed. It is
// an injected collaborator so a shared backend can replace the in-memory
// counter without touching the middleware, and tests can swap in their own.
type RateCounter interface {
	Allow(key string) bool
}

// MemoryRateCounter is a sliding-window RateCounter held in process memory.
type MemoryRateCounter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string][]time.Time
}

// NewMemoryRateCounter allows limit requests per key per window.
func NewMemoryRateCounter(limit int, window time.Duration) *MemoryRateCounter {
	return &MemoryRateCounter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
	}
}

// Allow records a request for key and reports whether it is within budget.
func (c *MemoryRateCounter) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-c.window)

	recent := c.seen[key][:0]
	for _, t := range c.seen[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= c.limit {
		c.seen[key] = recent
		return false
	}
	c.seen[key] = append(recent, now)
	return true
}

// RateLimit rejects over-budget clients with a 429. A nil counter disables
// limiting.
func RateLimit(counter RateCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				key = r.RemoteAddr
			}
			if !counter.Allow(key) {
				writeJSON(w, http.StatusTooManyRequests, model.ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
