package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-composer/internal/generation"
	"github.com/jonathan/outreach-composer/internal/types"
)

type stubGenerator struct {
	resp types.GenerateResponse
	err  error
}

func (g *stubGenerator) Generate(_ context.Context, _ types.GenerateRequest) (types.GenerateResponse, error) {
	return g.resp, g.err
}

func newTestServer(t *testing.T, gen Generator) *httptest.Server {
	t.Helper()
	srv, err := New(Config{Port: 0, Generator: gen})
	assert.NoError(t, err)
	return httptest.NewServer(srv.Handler())
}

func TestNew_RequiresGenerator(t *testing.T) {
	_, err := New(Config{Port: 8080})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleGenerate_Success(t *testing.T) {
	gen := &stubGenerator{resp: types.GenerateResponse{
		Variants: []types.Variant{{Label: "short", Text: "Hi. Open to connect?", CharCount: 20}},
	}}
	ts := newTestServer(t, gen)
	defer ts.Close()

	payload := []byte(`{"my_profile":{},"target_profile":{"name":"Dana"}}`)
	resp, err := http.Post(ts.URL+"/generate", "application/json", bytes.NewReader(payload))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body types.GenerateResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Variants, 1)
	assert.Equal(t, "short", body.Variants[0].Label)
}

func TestHandleGenerate_InvalidJSON(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate", "application/json", bytes.NewReader([]byte("{not json")))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGenerate_TooManyHooks(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	req := types.GenerateRequest{Hooks: make([]string, 11)}
	payload, _ := json.Marshal(req)
	resp, err := http.Post(ts.URL+"/generate", "application/json", bytes.NewReader(payload))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGenerate_UpstreamFailure(t *testing.T) {
	gen := &stubGenerator{err: &generation.Error{Stage: generation.StageModelRequest, Message: "model call failed"}}
	ts := newTestServer(t, gen)
	defer ts.Close()

	payload := []byte(`{"my_profile":{},"target_profile":{}}`)
	resp, err := http.Post(ts.URL+"/generate", "application/json", bytes.NewReader(payload))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleListRequests_WithoutDatabase(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/requests")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGetRequest_InvalidID(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/requests/not-a-uuid")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetRequest_WithoutDatabase(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/requests/6f1c2a4e-9f4b-4c7e-8a2d-3b5e6f7a8b9c")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORS_PreflightAllowed(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/generate", nil)
	assert.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
