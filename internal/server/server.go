// Package server provides the HTTP REST API for interview scorecards.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-scorecard/internal/cache"
	"github.com/jonathan/interview-scorecard/internal/config"
	"github.com/jonathan/interview-scorecard/internal/db"
	"github.com/jonathan/interview-scorecard/internal/scoring"
	"github.com/jonathan/interview-scorecard/internal/server/middleware"
	"github.com/jonathan/interview-scorecard/internal/server/ratelimit"
	"github.com/jonathan/interview-scorecard/internal/types"
)

// Role groups used by the routes.
var (
	reviewerRoles  = []types.Role{types.RoleAdmin, types.RoleHR, types.RoleInterviewer, types.RoleReviewer}
	catalogRoles   = []types.Role{types.RoleAdmin, types.RoleRecruiter}
	schedulerRoles = []types.Role{types.RoleAdmin, types.RoleHR, types.RoleRecruiter}
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	cache       *cache.RoundCache
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	minRating   float64
	labels      scoring.LabelStyle
	corsOrigins string
}

// Config holds server configuration
type Config struct {
	Port             int
	DatabaseURL      string
	RedisURL         string
	CacheTTL         time.Duration
	DefaultMinRating float64
	Labels           string
	CORSOrigins      string
	RateLimit        *ratelimit.Config
}

// ConfigFrom maps the service configuration onto server settings
func ConfigFrom(cfg *config.Config) Config {
	rl := cfg.RateLimit
	return Config{
		Port:             cfg.Server.Port,
		DatabaseURL:      cfg.Database.URL,
		RedisURL:         cfg.Redis.URL,
		CacheTTL:         cfg.Redis.CacheTTL,
		DefaultMinRating: cfg.Scoring.DefaultMinRating,
		Labels:           cfg.Scoring.Labels,
		CORSOrigins:      cfg.Server.CORSOrigins,
		RateLimit: ratelimit.NewConfig(rl.Enabled, rl.DefaultLimit, rl.DefaultWindow, rl.CleanupInterval,
			rl.Whitelist, rl.Blacklist),
	}
}

// New connects to the database and optional cache and builds the server
func New(cfg Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var roundCache *cache.RoundCache
	if cfg.RedisURL != "" {
		roundCache, err = cache.Connect(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			// The cache is optional; serve straight from the database.
			log.Printf("[cache] Redis unavailable, continuing without round cache: %v", err)
			roundCache = nil
		}
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := newServer(database, roundCache, NewJWTService(jwtConfig), passwordConfig, cfg)
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires routes and middleware around store.
func newServer(store Store, roundCache *cache.RoundCache, jwtService *JWTService, passwordConfig *config.PasswordConfig, cfg Config) *Server {
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == "" {
		corsOrigins = "*"
	}

	userService := NewUserService(store, passwordConfig)
	s := &Server{
		store:       store,
		cache:       roundCache,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
		minRating:   cfg.DefaultMinRating,
		labels:      scoring.ParseLabelStyle(cfg.Labels),
		corsOrigins: corsOrigins,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /users/{id}/role", s.authed(s.handleUpdateUserRole, types.RoleAdmin))

	// Scorecards
	mux.Handle("GET /round-ratings", s.authed(s.handleRoundRatings))

	// Reviewer feedback
	mux.Handle("POST /interviews/{id}/skill-reviews", s.authed(s.handleSubmitSkillReview, reviewerRoles...))
	mux.Handle("GET /interviews/{id}/skill-reviews/{user_id}", s.authed(s.handleGetSkillReview))
	mux.Handle("GET /interviews/{id}/skill-form", s.authed(s.handleGetSkillForm, reviewerRoles...))
	mux.Handle("POST /interviews/{id}/extra-skills", s.authed(s.handleToggleExtraSkill, reviewerRoles...))
	mux.Handle("PUT /interviews/{id}/feedback", s.authed(s.handlePutFeedback, reviewerRoles...))
	mux.Handle("PUT /interviews/{id}/hr-review", s.authed(s.handlePutHrReview, reviewerRoles...))

	// Skill catalog
	mux.Handle("GET /skills", s.authed(s.handleListSkills))
	mux.Handle("POST /skills", s.authed(s.handleCreateSkill, catalogRoles...))
	mux.Handle("DELETE /skills/{id}", s.authed(s.handleDeleteSkill, catalogRoles...))
	mux.Handle("GET /jobs/{id}/skills", s.authed(s.handleListJobSkills))
	mux.Handle("PUT /jobs/{id}/skills", s.authed(s.handleReplaceJobSkills, catalogRoles...))
	mux.Handle("POST /jobs", s.authed(s.handleCreateJob, schedulerRoles...))
	mux.Handle("POST /candidates", s.authed(s.handleCreateCandidate, schedulerRoles...))
	mux.Handle("GET /candidates/{id}/skills", s.authed(s.handleListCandidateSkills))

	// Interviews
	mux.Handle("POST /interview-types", s.authed(s.handleCreateInterviewType, schedulerRoles...))
	mux.Handle("POST /interviews", s.authed(s.handleCreateInterview, schedulerRoles...))
	mux.Handle("GET /interviews/{id}", s.authed(s.handleGetInterview))
	mux.Handle("PUT /interviews/{id}/status", s.authed(s.handleUpdateInterviewStatus, schedulerRoles...))

	s.handler = s.withRequestID(s.withRateLimit(s.withLogging(s.withCORS(mux))))
	return s
}

// authed requires a valid token and, when roles are given, one of those roles.
func (s *Server) authed(h http.HandlerFunc, roles ...types.Role) http.Handler {
	var next http.Handler = h
	if len(roles) > 0 {
		next = middleware.RequireRole(roles...)(next)
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// Handler returns the root handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if err := s.cache.Close(); err != nil {
		log.Printf("[cache] Failed to close redis client: %v", err)
	}
	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestID propagates or assigns an X-Request-ID
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v (request %s)", r.Method, r.URL.Path, rec.status, time.Since(start), r.Header.Get("X-Request-ID"))
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

// handleHealth reports whether the database answers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		log.Printf("[health] Database ping failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID uses the IP from RemoteAddr.
// X-Forwarded-For is ignored since no trusted proxy list exists.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	writeJSON(w, http.StatusTooManyRequests, response)
}
