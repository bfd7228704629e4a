package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-composer/internal/config"
	"github.com/jonathan/outreach-composer/internal/db"
	"github.com/jonathan/outreach-composer/internal/generation"
	"github.com/jonathan/outreach-composer/internal/llm"
	"github.com/jonathan/outreach-composer/internal/requestlog"
	"github.com/jonathan/outreach-composer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating connection notes.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveModel      string
	serveLogPath    string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON config file with flag defaults")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Model name override")
	serveCmd.Flags().StringVar(&serveLogPath, "log", "", "Path to the NDJSON request log")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	flags := config.Config{
		Port:    servePort,
		Model:   serveModel,
		LogPath: serveLogPath,
	}
	cfg, err := resolveConfig(serveConfigPath, flags)
	if err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, apiKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var sinks []generation.AuditSink
	if cfg.LogPath != "" {
		sink, err := requestlog.NewFileSink(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("failed to create request log: %w", err)
		}
		sinks = append(sinks, sink)
	}

	// Database storage is optional for the server
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	var database *db.DB
	if databaseURL != "" {
		database, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		sinks = append(sinks, database)
	} else {
		log.Println("DATABASE_URL not set; request storage disabled")
	}

	service := generation.NewService(client, nil, sinks...)

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Generator: service,
		DB:        database,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
