package record

import (
	"context"
	"time"
)

// Repository persists records. Every method that addresses a single record
// matches on record id and owner id together.
type Repository interface {
	// Create assigns the record ID and stores the row.
	Create(ctx context.Context, record *Record) error
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	// UpdateNotes returns ErrNotFound when no row matches.
	UpdateNotes(ctx context.Context, userID, recordID, notes string, updatedAt time.Time) (*Record, error)
	// Delete returns the number of removed rows.
	Delete(ctx context.Context, userID, recordID string) (int64, error)
}
