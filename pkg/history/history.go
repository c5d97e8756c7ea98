// Package history records completed pipeline runs.
//
// Every successful render or generate appends a Record to a store, and the
// `lumen history` command lists them. Records are identified by UUID so runs
// can be referenced individually, and the gallery server uses the records to
// find finished output images.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Record describes one completed pipeline run.
type Record struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"` // "render" or "generate"
	ScenePath  string    `json:"scene_path"`
	OutputPath string    `json:"output_path"`
	Width      uint      `json:"width,omitempty"`
	Height     uint      `json:"height,omitempty"`
	Samples    uint      `json:"samples,omitempty"`
	Threads    uint      `json:"threads,omitempty"`
	FailedRays uint64    `json:"failed_rays,omitempty"`
	CacheHit   bool      `json:"cache_hit,omitempty"`
	Duration   float64   `json:"duration_seconds"`
	StartedAt  time.Time `json:"started_at"`
}

// New creates a record with a fresh UUID and the start time set to now.
func New(operation string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Operation: operation,
		StartedAt: time.Now(),
	}
}

// Store is the interface for history storage backends.
type Store interface {
	// Append adds a record.
	Append(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records ordered newest first, at most limit entries.
	// A limit of 0 returns everything.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
