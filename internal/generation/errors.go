package generation

import "fmt"

// Stages at which generation can fail, recorded in the audit log
const (
	StageModelRequest = "model_request"
	StageParse        = "parse_json"
	StageNormalize    = "normalize_variants"
	StageFinalize     = "finalize"
)

// Error wraps a generation failure with the stage it happened at
type Error struct {
	Stage   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed at %s: %s", e.Stage, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
