package types

import "github.com/go-playground/validator/v10"

// GenerateRequest is the payload accepted by POST /generate and the CLI.
// The planner re-applies the compaction bounds regardless of what the
// caller sends; validation here only rejects clearly malformed payloads.
type GenerateRequest struct {
	MyProfile     SenderProfile `json:"my_profile"`
	TargetProfile TargetProfile `json:"target_profile"`
	Hooks         []string      `json:"hooks" validate:"max=10,dive,max=500"`
}

// GenerateResponse is the payload returned by POST /generate
type GenerateResponse struct {
	Variants []Variant `json:"variants"`
}

// Validate validates the GenerateRequest using the validator
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
