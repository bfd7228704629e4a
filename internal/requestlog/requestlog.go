// Package requestlog appends generation audit records to an NDJSON file,
// one JSON object per line.
package requestlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/outreach-composer/internal/generation"
)

// FileSink writes one JSON line per record to a local file
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink creates a sink writing to path, creating parent
// directories as needed.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return &FileSink{path: path}, nil
}

// Append writes the record as a single NDJSON line
func (s *FileSink) Append(_ context.Context, record generation.AuditRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// Path returns the file this sink writes to
func (s *FileSink) Path() string { return s.path }
