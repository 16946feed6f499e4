// Package config provides environment-driven configuration for the worktrust backend.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the process-level configuration read from the environment.
// Secrets are referenced by name only; values never appear in logs.
type Config struct {
	Port int

	// LLM
	GeminiAPIKey string

	// External profile store
	ICHost         string
	UserCanisterID string

	// Identity provider for the session handshake
	IIProviderURL string

	// LinkedIn OAuth application
	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURI  string

	// CORS allow-list
	FrontendOrigin string

	// Optional: identity-mapping cache database. Empty means in-memory.
	DatabaseURL string
}

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort           = 8080
	DefaultICHost         = "http://127.0.0.1:8000"
	DefaultFrontendOrigin = "http://localhost:3000"
)

// New reads configuration from the environment. GEMINI_API_KEY,
// USER_CANISTER_ID, and the LinkedIn OAuth variables are required.
func New() (*Config, error) {
	cfg := &Config{
		Port:                 DefaultPort,
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		ICHost:               envOr("IC_HOST", DefaultICHost),
		UserCanisterID:       os.Getenv("USER_CANISTER_ID"),
		IIProviderURL:        os.Getenv("II_PROVIDER_URL"),
		LinkedInClientID:     os.Getenv("LINKEDIN_CLIENT_ID"),
		LinkedInClientSecret: os.Getenv("LINKEDIN_CLIENT_SECRET"),
		LinkedInRedirectURI:  os.Getenv("LINKEDIN_REDIRECT_URI"),
		FrontendOrigin:       envOr("FRONTEND_ORIGIN", DefaultFrontendOrigin),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.UserCanisterID == "" {
		return fmt.Errorf("USER_CANISTER_ID is required but not set")
	}
	if c.LinkedInClientID == "" || c.LinkedInClientSecret == "" || c.LinkedInRedirectURI == "" {
		return fmt.Errorf("LINKEDIN_CLIENT_ID, LINKEDIN_CLIENT_SECRET and LINKEDIN_REDIRECT_URI are required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
