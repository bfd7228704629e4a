package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/outreach-composer/internal/observability"
	"github.com/jonathan/outreach-composer/internal/planner"
	"github.com/jonathan/outreach-composer/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [target-profile.json ...]",
	Short: "Build the deterministic writing plan without calling the model",
	Long:  "Extracts facts, scores anchors, and prints the bridge plan the model would be instructed to follow. With --batch, plans every target profile given as an argument and writes one trace file per target.",
	RunE:  runPlan,
}

var (
	planRequestPath   string
	planMyProfile     string
	planTargetProfile string
	planHooks         []string
	planCycle         int
	planShowPrompt    bool
	planBatch         bool
	planOutDir        string
	planWorkers       int
)

func init() {
	planCmd.Flags().StringVar(&planRequestPath, "request", "", "Path to a full request JSON file")
	planCmd.Flags().StringVar(&planMyProfile, "my-profile", "", "Path to the sender profile JSON file")
	planCmd.Flags().StringVar(&planTargetProfile, "target-profile", "", "Path to the target profile JSON file")
	planCmd.Flags().StringArrayVar(&planHooks, "hook", nil, "Caller-provided hook text (repeatable)")
	planCmd.Flags().IntVar(&planCycle, "cycle", 0, "Rotation index for anchor selection")
	planCmd.Flags().BoolVar(&planShowPrompt, "show-prompt", false, "Print the rendered model messages")
	planCmd.Flags().BoolVar(&planBatch, "batch", false, "Plan every target profile given as an argument")
	planCmd.Flags().StringVar(&planOutDir, "out", "plans", "Output directory for batch trace files")
	planCmd.Flags().IntVar(&planWorkers, "workers", 4, "Maximum concurrent plans in batch mode")

	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, args []string) error {
	if planBatch {
		return runPlanBatch(args)
	}

	req, err := loadGenerateRequest(planRequestPath, planMyProfile, planTargetProfile, planHooks)
	if err != nil {
		return err
	}

	planCtx := planner.BuildContext(req, uuid.New().String(), "(dry-run)", planCycle)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintTargetFacts(planCtx.Trace.TargetFacts)
	printer.PrintAnchorCandidates(planCtx.Trace.AnchorCandidates)
	printer.PrintBridgePlan(planner.VariantLabels, planCtx.BridgePlan)

	if planShowPrompt {
		fmt.Fprintln(os.Stdout, "\n--- SYSTEM ---")
		fmt.Fprintln(os.Stdout, planCtx.Messages.System)
		fmt.Fprintln(os.Stdout, "\n--- USER ---")
		fmt.Fprintln(os.Stdout, planCtx.Messages.User)
	}

	return nil
}

// runPlanBatch plans one target per argument file against the same sender
// profile, with bounded concurrency.
func runPlanBatch(targetPaths []string) error {
	if len(targetPaths) == 0 {
		return fmt.Errorf("batch mode requires at least one target profile file argument")
	}
	if planMyProfile == "" {
		return fmt.Errorf("batch mode requires --my-profile")
	}
	if planWorkers <= 0 {
		planWorkers = 1
	}

	var sender types.SenderProfile
	if err := decodeJSONFile(planMyProfile, &sender); err != nil {
		return err
	}

	if err := os.MkdirAll(planOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(planWorkers)

	for _, path := range targetPaths {
		g.Go(func() error {
			var target types.TargetProfile
			if err := decodeJSONFile(path, &target); err != nil {
				return err
			}

			req := types.GenerateRequest{MyProfile: sender, TargetProfile: target, Hooks: planHooks}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid request for %s: %w", path, err)
			}

			planCtx := planner.BuildContext(req, uuid.New().String(), "(dry-run)", planCycle)
			outPath := filepath.Join(planOutDir, traceFileName(path))
			if err := writeTrace(outPath, planCtx.Trace); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "planned %s -> %s\n", path, outPath)
			return nil
		})
	}

	return g.Wait()
}

func traceFileName(targetPath string) string {
	base := filepath.Base(targetPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".plan.json"
}

func writeTrace(path string, trace planner.Trace) error {
	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan trace %s: %w", path, err)
	}
	return nil
}
