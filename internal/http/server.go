// Package http exposes the JSON API: transaction, goal and investment CRUD,
// category configuration, weekly windows, and the composed dashboard
// view-model. Records are attributed to the caller through the X-User-ID
// header; there is no identity layer behind it.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/caiograbovskii/financaspro/internal/cache"
	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
	"github.com/caiograbovskii/financaspro/internal/services"
	"github.com/caiograbovskii/financaspro/internal/session"
)

// Service is the application surface the handlers call into.
type Service interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	ListInvestments(ctx context.Context, userID string) ([]core.InvestmentAsset, error)
	CreateInvestment(ctx context.Context, userID, ticker, category string, initialAmount float64) (core.InvestmentAsset, error)
	Contribute(ctx context.Context, userID, id string, amount float64) error
	Redeem(ctx context.Context, userID, id string, amount float64) error
	EditInvestment(ctx context.Context, userID, id, ticker, category string, newCurrentValue float64) error
	DeleteInvestment(ctx context.Context, userID, id string, liquidate bool) error

	Categories(ctx context.Context, userID string) (core.CategoryConfig, error)
	SaveCategories(ctx context.Context, userID string, cfg core.CategoryConfig) error
	WeeklyWindows(ctx context.Context, userID string, filter core.DateFilter) ([]core.WeeklyWindow, error)
	SaveWeeklyWindows(ctx context.Context, userID string, filter core.DateFilter, windows []core.WeeklyWindow) error
}

var _ Service = (*services.FinanceService)(nil)

type Server struct {
	http.Server
	svc      Service
	sessions *session.Tracker

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Dashboard view-models are expensive to assemble; cache per
	// user+month and drop the user's entries on every mutation.
	dashboardCache *cache.LRUCache[dashboardResponse]
	caches         *cache.Manager

	advisorSeed int

	shutdownOnce sync.Once
}

// Options tunes the optional server dependencies.
type Options struct {
	Sessions    *session.Tracker
	AdvisorSeed int
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc Service, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		svc:            svc,
		sessions:       opts.Sessions,
		rateLimiter:    newRateLimiter(defaultRequestLimit),
		metrics:        &securityMetrics{},
		dashboardCache: cache.NewLRUCache[dashboardResponse](100, 5*time.Minute),
		caches:         cache.NewManager(),
		advisorSeed:    opts.AdvisorSeed,
	}

	s.caches.Register(s.dashboardCache)
	s.caches.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.wrap(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.wrap(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.wrap(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/goals", s.wrap(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.wrap(s.handleCreateGoal))
	mux.HandleFunc("PUT /api/goals/{id}", s.wrap(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.wrap(s.handleDeleteGoal))

	mux.HandleFunc("GET /api/investments", s.wrap(s.handleListInvestments))
	mux.HandleFunc("POST /api/investments", s.wrap(s.handleCreateInvestment))
	mux.HandleFunc("PUT /api/investments/{id}", s.wrap(s.handleEditInvestment))
	mux.HandleFunc("DELETE /api/investments/{id}", s.wrap(s.handleDeleteInvestment))
	mux.HandleFunc("POST /api/investments/{id}/contribute", s.wrap(s.handleContribute))
	mux.HandleFunc("POST /api/investments/{id}/redeem", s.wrap(s.handleRedeem))

	mux.HandleFunc("GET /api/categories", s.wrap(s.handleGetCategories))
	mux.HandleFunc("PUT /api/categories", s.wrap(s.handleSaveCategories))
	mux.HandleFunc("GET /api/weeks", s.wrap(s.handleWeeks))
	mux.HandleFunc("PUT /api/weeks", s.wrap(s.handleSaveWeeks))

	mux.HandleFunc("GET /api/dashboard", s.wrap(s.handleDashboard))

	return s
}

// wrap adds rate limiting, security headers, request tracing and session
// touch to a handler.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := log.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(ctx, "Suspicious request",
				log.FieldRequestID, requestID,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, clientIP)
		}

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if s.sessions != nil {
			if uid := r.Header.Get(userIDHeader); uid != "" {
				s.sessions.Touch(uid)
			}
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// invalidateDashboard drops the user's cached dashboard view-models after a
// mutation.
func (s *Server) invalidateDashboard(userID string) {
	s.dashboardCache.DeletePrefix(dashboardKeyPrefix(userID))
}

// Shutdown stops the cache sweeper and rate limiter before draining the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
