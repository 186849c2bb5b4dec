package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/agent"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/validation"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the conversational resume builder.

Set DATABASE_URL to enable accounts, saved profiles and resume history;
without it the server runs in guest-only mode.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	engine := &agent.Engine{
		LLM:      client,
		States:   agent.NewMemoryStateStore(),
		Renderer: rendering.NewRenderer(cfg.TemplatePath),
		Compiler: &validation.Compiler{OutputDir: cfg.OutputDir},
		Counter:  validation.PageCounter{},
		Ingestor: &ingestion.Ingestor{},
	}

	var database *db.DB
	if cfg.AuthEnabled() {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		engine.Profiles = &server.DBProfileStore{DB: database}
		engine.Generations = &server.DBGenerationStore{DB: database}
		engine.States = server.NewLayeredStateStore(database)
	} else {
		log.Println("DATABASE_URL not set, running in guest-only mode")
	}

	srv, err := server.New(cfg, engine, database)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
