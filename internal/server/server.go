package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/worktrust/backend/internal/linkedin"
	"github.com/worktrust/backend/internal/profilestore"
	"github.com/worktrust/backend/internal/profilesync"
	"github.com/worktrust/backend/internal/server/middleware"
	"github.com/worktrust/backend/internal/types"
)

// CVExtractor turns raw CV text into structured experiences and claims.
type CVExtractor interface {
	Extract(ctx context.Context, cvText string) ([]types.WorkExperience, []types.Claim, error)
}

// ProfileSyncer runs the synchronization workflow for one principal.
type ProfileSyncer interface {
	Sync(ctx context.Context, principal, name, skillLevel string, experiences []types.WorkExperience) (*profilesync.Result, error)
}

// IdentityBridge resolves an external user to a principal.
type IdentityBridge interface {
	Login(ctx context.Context, externalID, email string) (string, error)
}

// OAuthClient is the LinkedIn OAuth surface the callback handler depends on.
type OAuthClient interface {
	AuthURL() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*linkedin.UserInfo, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	extractor      CVExtractor
	syncer         ProfileSyncer
	store          profilestore.Store
	bridge         IdentityBridge
	oauth          OAuthClient
	jwtService     *JWTService
	validator      *validator.Validate
	frontendOrigin string
}

// Config holds server configuration
type Config struct {
	Port           int
	FrontendOrigin string
}

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Extractor  CVExtractor
	Syncer     ProfileSyncer
	Store      profilestore.Store
	Bridge     IdentityBridge
	OAuth      OAuthClient
	JWTService *JWTService
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Extractor == nil || deps.Syncer == nil || deps.Store == nil ||
		deps.Bridge == nil || deps.OAuth == nil || deps.JWTService == nil {
		return nil, fmt.Errorf("server: missing dependency")
	}

	s := &Server{
		extractor:      deps.Extractor,
		syncer:         deps.Syncer,
		store:          deps.Store,
		bridge:         deps.Bridge,
		oauth:          deps.OAuth,
		jwtService:     deps.JWTService,
		validator:      validator.New(),
		frontendOrigin: cfg.FrontendOrigin,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // extraction calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Profile routes require an authenticated
// principal; extraction and the OAuth flow do not.
func (s *Server) routes() http.Handler {
	auth := middleware.Auth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/cv/parse", s.handleParseCV)

	mux.Handle("POST /api/profile/sync", auth(http.HandlerFunc(s.handleSyncProfile)))
	mux.Handle("GET /api/profile", auth(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("GET /api/profiles", auth(http.HandlerFunc(s.handleListProfiles)))
	mux.Handle("POST /api/profiles/{principal}/positions/{index}/verify",
		auth(http.HandlerFunc(s.handleVerifyPosition)))

	mux.HandleFunc("GET /auth/linkedin", s.handleLinkedInAuth)
	mux.HandleFunc("GET /auth/linkedin/callback", s.handleLinkedInCallback)
	mux.HandleFunc("POST /auth/verify", s.handleVerify)

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

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers for the configured frontend origin
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.frontendOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
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

// successResponse is the envelope for data-carrying replies.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// dataResponse writes a success-enveloped JSON response
func (s *Server) dataResponse(w http.ResponseWriter, status int, data any) {
	s.jsonResponse(w, status, successResponse{Success: true, Data: data})
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
