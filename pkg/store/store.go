// Package store persists canvases between requests.
//
// The API server keeps every built canvas as a [Snapshot] so that renderer
// callbacks can patch nodes and later requests can render or project the
// patched canvas. Backends:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: one JSON file per snapshot, for the CLI
//   - [MongoStore]: shared storage for multi-instance deployments
//
// # Usage
//
//	snap := store.NewSnapshot(result.Canvas, result.Warnings, store.DefaultTTL)
//	if err := st.Put(ctx, snap); err != nil {
//	    return err
//	}
//
//	snap, err := store.PatchNode(ctx, st, id, "node-3", graph.Patch{Label: &label})
//	if errors.Is(err, store.ErrNotFound) {
//	    // unknown or expired canvas
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a snapshot does not exist or has expired.
	ErrNotFound = errors.New("canvas not found")
)

// DefaultTTL is how long an untouched snapshot is kept.
const DefaultTTL = 24 * time.Hour

// Snapshot is a stored canvas.
type Snapshot struct {
	ID        string              `json:"id" bson:"_id"`
	Canvas    *graph.ParsedResult `json:"canvas" bson:"canvas"`
	Warnings  []string            `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Mode      layout.Mode         `json:"mode,omitempty" bson:"mode,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`

	// ExpiresAt is zero for snapshots that never expire.
	ExpiresAt time.Time `json:"expires_at,omitzero" bson:"expires_at,omitempty"`
}

// NewSnapshot wraps a canvas under a fresh random ID.
// A ttl of zero keeps the snapshot forever.
func NewSnapshot(canvas *graph.ParsedResult, warnings []string, ttl time.Duration) *Snapshot {
	now := time.Now().UTC()
	s := &Snapshot{
		ID:        uuid.NewString(),
		Canvas:    canvas,
		Warnings:  warnings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}

// IsExpired returns true if the snapshot has expired.
func (s *Snapshot) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a snapshot by ID.
	// Returns ErrNotFound if it doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Put creates or replaces a snapshot.
	Put(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot.
	// Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired snapshots.
	Cleanup(ctx context.Context) (int, error)

	// Close releases the backend.
	Close() error
}

// PatchNode applies a node patch to a stored canvas and writes it back.
// Concurrent patches to the same canvas are last-write-wins.
func PatchNode(ctx context.Context, st Store, id, nodeID string, p graph.Patch) (*Snapshot, error) {
	snap, err := st.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := snap.Canvas.ApplyPatch(nodeID, p); err != nil {
		return nil, err
	}
	snap.UpdatedAt = time.Now().UTC()
	if err := st.Put(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
