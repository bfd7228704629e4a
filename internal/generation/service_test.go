package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-composer/internal/types"
	"github.com/jonathan/outreach-composer/internal/validation"
)

type fakeClient struct {
	responses []string
	err       error
	calls     int
	temps     []float32
}

func (c *fakeClient) GenerateNotes(_ context.Context, _, _ string, temperature float32) (string, error) {
	c.temps = append(c.temps, temperature)
	if c.err != nil {
		return "", c.err
	}
	idx := c.calls
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	c.calls++
	return c.responses[idx], nil
}

func (c *fakeClient) ModelName() string { return "fake-model" }
func (c *fakeClient) Close() error      { return nil }

type memorySink struct {
	records []AuditRecord
	err     error
}

func (s *memorySink) Append(_ context.Context, record AuditRecord) error {
	s.records = append(s.records, record)
	return s.err
}

// goodResponse satisfies an empty-profile bridge plan: the hook falls back
// to "your work", the proof point comes from the fallback table (so each
// text needs three of its tokens), and each variant must end with its CTA.
func goodResponse() string {
	return `{"variants":[
		{"label":"short","text":"Hi, I enjoyed your work. I shipped analytics dashboards for commercial teams myself. Open to connect?"},
		{"label":"direct","text":"Hi, following your work closely. I build monitoring dashboards and analytics tooling every day. Open to a quick chat?"},
		{"label":"warm","text":"Hi, your work stood out. I have shipped analytics tools and monitoring dashboards before. Worth connecting?"}
	]}`
}

// missingProofResponse carries the hook but none of the fallback proof
// point's vocabulary.
func missingProofResponse() string {
	return `{"variants":[
		{"label":"short","text":"Hi, I enjoyed your work. Open to connect?"},
		{"label":"direct","text":"Hi, following your work closely. Open to a quick chat?"},
		{"label":"warm","text":"Hi, your work stood out to me. Worth connecting?"}
	]}`
}

func badHookResponse() string {
	return `{"variants":[
		{"label":"short","text":"Hello there. Open to connect?"},
		{"label":"direct","text":"Hello there. Open to a quick chat?"},
		{"label":"warm","text":"Hello there. Worth connecting?"}
	]}`
}

func TestService_Generate_FirstAttemptClean(t *testing.T) {
	client := &fakeClient{responses: []string{goodResponse()}}
	sink := &memorySink{}
	service := NewService(client, nil, sink)

	resp, err := service.Generate(context.Background(), types.GenerateRequest{})

	assert.NoError(t, err)
	assert.Len(t, resp.Variants, 3)
	assert.Equal(t, 1, client.calls)
	assert.Len(t, sink.records, 1)
	assert.Equal(t, "ok", sink.records[0].Status)
	assert.Len(t, sink.records[0].Attempts, 1)
	for _, validation := range sink.records[0].Validations {
		assert.Empty(t, validation.Violations, "label %s", validation.Label)
	}
}

func TestService_Generate_RetriesOnViolations(t *testing.T) {
	client := &fakeClient{responses: []string{badHookResponse(), goodResponse()}}
	service := NewService(client, nil)

	resp, err := service.Generate(context.Background(), types.GenerateRequest{})

	assert.NoError(t, err)
	assert.Len(t, resp.Variants, 3)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, []float32{0.6, 0.2}, client.temps)
}

func TestService_Generate_RetriesWhenProofPointMissing(t *testing.T) {
	client := &fakeClient{responses: []string{missingProofResponse(), goodResponse()}}
	sink := &memorySink{}
	service := NewService(client, nil, sink)

	resp, err := service.Generate(context.Background(), types.GenerateRequest{})

	assert.NoError(t, err)
	assert.Len(t, resp.Variants, 3)
	assert.Equal(t, 2, client.calls)
	first := sink.records[0].Attempts[0].Validations
	assert.Contains(t, first[0].Violations, validation.ViolationMissingProof)
}

func TestService_Generate_ReturnsLastAttemptDespiteViolations(t *testing.T) {
	client := &fakeClient{responses: []string{badHookResponse()}}
	sink := &memorySink{}
	service := NewService(client, nil, sink)

	resp, err := service.Generate(context.Background(), types.GenerateRequest{})

	assert.NoError(t, err)
	assert.Len(t, resp.Variants, 3)
	assert.Equal(t, 2, client.calls)
	assert.NotEmpty(t, sink.records[0].Validations[0].Violations)
}

func TestService_Generate_ModelError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	sink := &memorySink{}
	service := NewService(client, nil, sink)

	_, err := service.Generate(context.Background(), types.GenerateRequest{})

	var genErr *Error
	assert.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageModelRequest, genErr.Stage)
	assert.Equal(t, "error", sink.records[0].Status)
}

func TestService_Generate_ParseError(t *testing.T) {
	client := &fakeClient{responses: []string{"I refuse to answer"}}
	service := NewService(client, nil)

	_, err := service.Generate(context.Background(), types.GenerateRequest{})

	var genErr *Error
	assert.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageParse, genErr.Stage)
}

func TestService_Generate_EmptyVariantList(t *testing.T) {
	client := &fakeClient{responses: []string{`{"variants":[]}`}}
	service := NewService(client, nil)

	_, err := service.Generate(context.Background(), types.GenerateRequest{})

	var genErr *Error
	assert.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageNormalize, genErr.Stage)
}

func TestService_Generate_SinkFailureDoesNotFailRequest(t *testing.T) {
	client := &fakeClient{responses: []string{goodResponse()}}
	sink := &memorySink{err: errors.New("disk full")}
	service := NewService(client, nil, sink)

	resp, err := service.Generate(context.Background(), types.GenerateRequest{})

	assert.NoError(t, err)
	assert.Len(t, resp.Variants, 3)
}

func TestService_Generate_CustomSingleAttempt(t *testing.T) {
	client := &fakeClient{responses: []string{badHookResponse()}}
	service := NewService(client, []AttemptSettings{{Temperature: 0.1}})

	_, err := service.Generate(context.Background(), types.GenerateRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, []float32{0.1}, client.temps)
}
