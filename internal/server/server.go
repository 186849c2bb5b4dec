// Package server provides the HTTP API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/agent"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// ChatEngine processes one conversation turn. Implemented by agent.Engine.
type ChatEngine interface {
	HandleTurn(ctx context.Context, threadID, userID string, isGuest bool, message string) (*agent.TurnResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             *db.DB
	engine         ChatEngine
	resumes        ResumeStore
	profiles       ProfileDBStore
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	userService    *UserService
	authHandler    *AuthHandler
	outputDir      string
	allowedOrigins []string
}

// New creates a new server instance. database may be nil, in which case
// authentication and resume history are disabled and every chat thread is a
// guest thread.
func New(cfg *config.Config, engine ChatEngine, database *db.DB) (*Server, error) {
	s := &Server{
		db:             database,
		engine:         engine,
		outputDir:      cfg.OutputDir,
		allowedOrigins: cfg.AllowedOrigins,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	if database != nil {
		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		s.userService = NewUserService(database, passwordConfig)

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
		s.authHandler = NewAuthHandler(s.userService, s.jwtService)
		s.resumes = database
		s.profiles = database
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Generation turns compile LaTeX twice
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Authenticated endpoints are only registered
// when a database is configured.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	chat := http.HandlerFunc(s.handleChatMessage)
	if s.jwtService != nil {
		mux.Handle("POST /chat/message",
			middleware.OptionalAuthMiddleware(s.jwtService.AsTokenValidator())(chat))
	} else {
		mux.Handle("POST /chat/message", chat)
	}

	// Guest downloads carry no credentials; the filename pattern is the
	// only gate.
	mux.HandleFunc("GET /resumes/download/guest/{filename}", s.handleGuestDownload)

	if s.authHandler != nil {
		mux.HandleFunc("POST /auth/register", s.authHandler.Register)
		mux.HandleFunc("POST /auth/login", s.authHandler.Login)

		authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
		mux.Handle("GET /resumes", authed(http.HandlerFunc(s.handleListResumes)))
		mux.Handle("GET /resumes/{id}", authed(http.HandlerFunc(s.handleGetResume)))
		mux.Handle("GET /resumes/{id}/download", authed(http.HandlerFunc(s.handleDownloadResume)))
		mux.Handle("DELETE /resumes/{id}", authed(http.HandlerFunc(s.handleDeleteResume)))
		mux.Handle("GET /profile/me", authed(http.HandlerFunc(s.handleGetMyProfile)))
		mux.Handle("DELETE /profile/me", authed(http.HandlerFunc(s.handleDeleteMyProfile)))
	}

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers for the configured origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed := s.corsOrigin(origin); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsOrigin(origin string) string {
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
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
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored since it is client-controlled unless a trusted proxy sets it.
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
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
