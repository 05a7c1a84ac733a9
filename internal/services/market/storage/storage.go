// Package storage defines persistence contracts for the market journal.
package storage

import (
	"context"
	"errors"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// JournalStore persists the append-only event journal and the block cursor.
// Appended events receive monotonically increasing sequence numbers;
// replaying them in sequence order rebuilds the entire market state.
type JournalStore interface {
	// AppendEvents writes a decision's events atomically.
	AppendEvents(ctx context.Context, events []event.Event) error
	// ListEvents returns up to limit events with sequence greater than
	// afterSeq, in sequence order. limit <= 0 means no limit.
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
	// Height returns the persisted block height, zero when never set.
	Height(ctx context.Context) (chain.BlockNumber, error)
	// SetHeight persists the block height.
	SetHeight(ctx context.Context, height chain.BlockNumber) error
	// Close releases the store.
	Close() error
}
