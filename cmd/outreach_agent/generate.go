package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-composer/internal/config"
	"github.com/jonathan/outreach-composer/internal/generation"
	"github.com/jonathan/outreach-composer/internal/llm"
	"github.com/jonathan/outreach-composer/internal/observability"
	"github.com/jonathan/outreach-composer/internal/requestlog"
	"github.com/jonathan/outreach-composer/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate connection-note variants for one target",
	Long:  "Runs the full pipeline: builds the bridge plan, calls the model, validates the drafts against the plan, and prints the final variants as JSON.",
	RunE:  runGenerate,
}

var (
	generateConfigPath    string
	generateRequestPath   string
	generateMyProfile     string
	generateTargetProfile string
	generateHooks         []string
	generateModel         string
	generateLogPath       string
	generateVerbose       bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to a JSON config file with flag defaults")
	generateCmd.Flags().StringVar(&generateRequestPath, "request", "", "Path to a full request JSON file")
	generateCmd.Flags().StringVar(&generateMyProfile, "my-profile", "", "Path to the sender profile JSON file")
	generateCmd.Flags().StringVar(&generateTargetProfile, "target-profile", "", "Path to the target profile JSON file")
	generateCmd.Flags().StringArrayVar(&generateHooks, "hook", nil, "Caller-provided hook text (repeatable)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Model name override")
	generateCmd.Flags().StringVar(&generateLogPath, "log", "", "Path to the NDJSON request log")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print plan and validation details")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	// Flags win over config file values, which win over built-in defaults
	flags := config.Config{
		MyProfile:     generateMyProfile,
		TargetProfile: generateTargetProfile,
		Model:         generateModel,
		LogPath:       generateLogPath,
	}
	cfg, err := resolveConfig(generateConfigPath, flags)
	if err != nil {
		return err
	}

	req, err := loadGenerateRequest(generateRequestPath, cfg.MyProfile, cfg.TargetProfile, generateHooks)
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

	var capture *recordCapture
	if generateVerbose {
		capture = &recordCapture{}
		sinks = append(sinks, capture)
	}

	service := generation.NewService(client, nil, sinks...)
	resp, err := service.Generate(ctx, req)
	if err != nil {
		return err
	}

	if generateVerbose {
		printVerboseResults(os.Stdout, capture, resp.Variants)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

// recordCapture holds the request's audit record so verbose mode can show
// the final validation results alongside the variants.
type recordCapture struct {
	record generation.AuditRecord
	seen   bool
}

func (c *recordCapture) Append(_ context.Context, record generation.AuditRecord) error {
	c.record = record
	c.seen = true
	return nil
}

func printVerboseResults(out io.Writer, capture *recordCapture, variants []types.Variant) {
	printer := observability.NewPrinter(out)
	if capture != nil && capture.seen {
		printer.PrintValidations(capture.record.Validations)
	}
	printer.PrintVariants(variants)
}
