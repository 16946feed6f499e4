package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/worktrust/backend/internal/config"
	"github.com/worktrust/backend/internal/cv"
	"github.com/worktrust/backend/internal/db"
	"github.com/worktrust/backend/internal/identity"
	"github.com/worktrust/backend/internal/linkedin"
	"github.com/worktrust/backend/internal/llm"
	"github.com/worktrust/backend/internal/profilestore"
	"github.com/worktrust/backend/internal/profilesync"
	"github.com/worktrust/backend/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the CV extraction, profile sync, and identity verification endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	store := profilestore.NewCanisterClient(cfg.ICHost, cfg.UserCanisterID)

	// The mapping cache is optional; without a database the bridge falls back
	// to in-process memory and rederives across restarts.
	var cache identity.MappingStore = identity.NewMemStore()
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		cache = database
	} else {
		log.Println("DATABASE_URL not set, using in-memory identity mapping cache")
	}

	var auth identity.AuthClient = identity.NoAuth{}
	if cfg.IIProviderURL != "" {
		auth = identity.NewProviderClient(cfg.IIProviderURL)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		FrontendOrigin: cfg.FrontendOrigin,
	}, server.Deps{
		Extractor:  cv.NewExtractor(llmClient),
		Syncer:     profilesync.NewSyncer(store),
		Store:      store,
		Bridge:     identity.NewBridge(cache, auth),
		OAuth:      linkedin.NewClient(cfg.LinkedInClientID, cfg.LinkedInClientSecret, cfg.LinkedInRedirectURI),
		JWTService: server.NewJWTService(jwtConfig),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
