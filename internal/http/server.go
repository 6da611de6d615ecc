// Package http implements the web front end: server-rendered pages over the
// expense store plus a small JSON API.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"expenses/internal/cache"
	"expenses/internal/core"
	"expenses/internal/services"
	"expenses/internal/store"
	appweb "expenses/web"
)

const expenseListCacheTTL = 30 * time.Second

type Server struct {
	http.Server
	templates *template.Template
	svc       *services.ExpenseService
	store     store.Store

	rateLimiter *rateLimiter

	// Cached full expense list feeding dashboard, analytics and the API.
	// Purged on every mutation.
	listCache *cache.LRUCache[[]core.Expense]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, svc *services.ExpenseService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:              svc,
		store:            svc.Store(),
		rateLimiter:      newRateLimiter(),
		listCache:        cache.NewLRUCache[[]core.Expense](8, expenseListCacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /expenses", s.withMiddleware(s.handleExpenses))
	mux.HandleFunc("GET /add_expense", s.withMiddleware(s.handleAddExpenseForm))
	mux.HandleFunc("POST /add_expense", s.withMiddleware(s.handleAddExpense))
	mux.HandleFunc("GET /analytics", s.withMiddleware(s.handleAnalytics))
	mux.HandleFunc("GET /export", s.withMiddleware(s.handleExportPage))
	mux.HandleFunc("GET /export_csv", s.withMiddleware(s.handleExportCSV))
	mux.HandleFunc("GET /api/expenses", s.withMiddleware(s.handleAPIExpenses))
	mux.HandleFunc("GET /api/stats", s.withMiddleware(s.handleAPIStats))
	mux.HandleFunc("GET /delete_expense/{id}", s.withMiddleware(s.handleDeleteExpense))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/", s.withMiddleware(s.handleNotFound))

	return s
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := requestClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit the mutating endpoints only.
		if isMutating(r) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

func isMutating(r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	return len(r.URL.Path) > len("/delete_expense/") && r.URL.Path[:len("/delete_expense/")] == "/delete_expense/"
}

// getAllExpenses returns the full list, cached briefly between mutations.
func (s *Server) getAllExpenses(ctx context.Context) ([]core.Expense, error) {
	const key = "all"
	if items, found := s.listCache.Get(key); found {
		out := make([]core.Expense, len(items))
		copy(out, items)
		return out, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	items, err := s.store.All(cctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	s.listCache.Set(key, items)
	return items, nil
}

func (s *Server) invalidateCache() {
	s.listCache.Purge()
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.listCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
