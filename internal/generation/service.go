package generation

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-composer/internal/llm"
	"github.com/jonathan/outreach-composer/internal/planner"
	"github.com/jonathan/outreach-composer/internal/types"
	"github.com/jonathan/outreach-composer/internal/validation"
)

// AttemptSettings controls one model attempt
type AttemptSettings struct {
	Temperature float32 `json:"temperature"`
}

// DefaultAttempts: a creative first pass, then a conservative retry when
// the first draft violates its bridge plan.
var DefaultAttempts = []AttemptSettings{
	{Temperature: 0.6},
	{Temperature: 0.2},
}

// VariantValidation records the violations found for one labeled draft
type VariantValidation struct {
	Label      string   `json:"label"`
	Violations []string `json:"violations"`
}

// AttemptLog is the audit record of a single model attempt
type AttemptLog struct {
	Attempt     int                 `json:"attempt"`
	Temperature float32             `json:"temperature"`
	Plan        planner.Trace       `json:"plan"`
	Messages    planner.Messages    `json:"messages"`
	Validations []VariantValidation `json:"validations"`
	FinalTexts  []types.Variant     `json:"final_texts"`
}

// ErrorInfo is the audit form of a generation failure
type ErrorInfo struct {
	Stage string `json:"stage"`
	Msg   string `json:"msg"`
}

// AuditRecord is the full per-request audit payload handed to sinks
type AuditRecord struct {
	Timestamp          string              `json:"ts"`
	RequestID          string              `json:"request_id"`
	Event              string              `json:"event"`
	ModelName          string              `json:"model_name"`
	Attempts           []AttemptLog        `json:"attempts"`
	Status             string              `json:"status"`
	Error              *ErrorInfo          `json:"error,omitempty"`
	ModelOutputPreview string              `json:"model_output_preview,omitempty"`
	Variants           []types.Variant     `json:"variants,omitempty"`
	Validations        []VariantValidation `json:"validations,omitempty"`
	Banlist            []string            `json:"final_banlist,omitempty"`
	LatencyMS          int64               `json:"latency_ms"`
}

// AuditSink receives one record per request. Sinks must never fail the
// request path; errors are logged and dropped.
type AuditSink interface {
	Append(ctx context.Context, record AuditRecord) error
}

// Service runs the attempt loop around the model client
type Service struct {
	client   llm.Client
	attempts []AttemptSettings
	sinks    []AuditSink
}

// NewService creates a generation service. With no attempts given,
// DefaultAttempts apply.
func NewService(client llm.Client, attempts []AttemptSettings, sinks ...AuditSink) *Service {
	if len(attempts) == 0 {
		attempts = DefaultAttempts
	}
	return &Service{client: client, attempts: attempts, sinks: sinks}
}

// Generate plans, prompts the model, and validates the drafts. Each retry
// advances the planner's cycle index so the anchor plan can vary. The last
// attempt's variants are returned even when violations remain; violations
// are advisory for the caller, not fatal.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	start := time.Now()
	requestID := uuid.New().String()
	record := AuditRecord{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
		Event:     "generate",
		ModelName: s.client.ModelName(),
	}

	var (
		finalVariants    []types.Variant
		finalValidations []VariantValidation
		finalContent     string
		finalBanlist     []string
	)

	for idx, settings := range s.attempts {
		planCtx := planner.BuildContext(req, requestID, s.client.ModelName(), idx)

		content, err := s.client.GenerateNotes(ctx, planCtx.Messages.System, planCtx.Messages.User, settings.Temperature)
		if err != nil {
			s.fail(ctx, &record, start, StageModelRequest, err.Error())
			return types.GenerateResponse{}, &Error{Stage: StageModelRequest, Message: "model call failed", Cause: err}
		}

		variants, ok := ParseVariants(content)
		if !ok {
			s.fail(ctx, &record, start, StageParse, "model did not return JSON")
			return types.GenerateResponse{}, &Error{Stage: StageParse, Message: "model did not return JSON"}
		}
		if len(variants) == 0 {
			s.fail(ctx, &record, start, StageNormalize, "no variants returned")
			return types.GenerateResponse{}, &Error{Stage: StageNormalize, Message: "no variants returned"}
		}

		validations := make([]VariantValidation, 0, len(variants))
		trimmed := make([]types.Variant, 0, len(variants))
		for _, variant := range variants {
			entry := planCtx.BridgePlan[variant.Label]
			variant.Text = validation.TrimToLimitPreservingCTA(variant.Text, entry.CTA, validation.MaxVariantLen)
			variant.CharCount = len(variant.Text)
			violations := validation.ValidateVariantTextExtended(variant.Text, entry, planCtx.Banlist)
			validations = append(validations, VariantValidation{Label: variant.Label, Violations: violations})
			trimmed = append(trimmed, variant)
		}

		record.Attempts = append(record.Attempts, AttemptLog{
			Attempt:     idx + 1,
			Temperature: settings.Temperature,
			Plan:        planCtx.Trace,
			Messages:    planCtx.Messages,
			Validations: validations,
			FinalTexts:  trimmed,
		})

		finalVariants = trimmed
		finalValidations = validations
		finalContent = content
		finalBanlist = planCtx.Banlist

		if !anyViolations(validations) {
			break
		}
	}

	if finalVariants == nil {
		s.fail(ctx, &record, start, StageFinalize, "no variants produced")
		return types.GenerateResponse{}, &Error{Stage: StageFinalize, Message: "no variants produced"}
	}

	record.Status = "ok"
	record.ModelOutputPreview = preview(finalContent, 1200)
	record.Variants = finalVariants
	record.Validations = finalValidations
	record.Banlist = finalBanlist
	record.LatencyMS = time.Since(start).Milliseconds()
	s.audit(ctx, record)

	return types.GenerateResponse{Variants: finalVariants}, nil
}

func (s *Service) fail(ctx context.Context, record *AuditRecord, start time.Time, stage, msg string) {
	record.Status = "error"
	record.Error = &ErrorInfo{Stage: stage, Msg: msg}
	record.LatencyMS = time.Since(start).Milliseconds()
	s.audit(ctx, *record)
}

func (s *Service) audit(ctx context.Context, record AuditRecord) {
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, record); err != nil {
			log.Printf("audit sink failed for request %s: %v", record.RequestID, err)
		}
	}
}

func anyViolations(validations []VariantValidation) bool {
	for _, item := range validations {
		if len(item.Violations) > 0 {
			return true
		}
	}
	return false
}

func preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
