package record

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/slog"

	"vinylscan/internal/utils/logger"
)

// Servicer operations return store errors unwrapped; the failing step is
// only named in the log.
type Servicer interface {
	Add(ctx context.Context, userID string, data Data) (*Record, error)
	Collection(ctx context.Context, userID string) ([]Record, error)
	UpdateNotes(ctx context.Context, userID, recordID, notes string) (*Record, error)
	Remove(ctx context.Context, userID, recordID string) error
}

// Service defines the business logic for collection operations
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  log.With(slog.String("component", "record_service")),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores a new record owned by userID.
func (s *Service) Add(ctx context.Context, userID string, data Data) (*Record, error) {
	if userID == "" {
		return nil, ErrInvalidData
	}

	rec := data.toRecord(userID, s.now().UTC())
	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to create record", slog.String("user_id", userID), logger.Err(err))
		return nil, err
	}

	s.log.Info("record created", slog.String("record_id", rec.ID), slog.String("user_id", userID))
	return rec, nil
}

// Collection returns every record owned by userID, newest first.
func (s *Service) Collection(ctx context.Context, userID string) ([]Record, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list records", slog.String("user_id", userID), logger.Err(err))
		return nil, err
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Service) UpdateNotes(ctx context.Context, userID, recordID, notes string) (*Record, error) {
	rec, err := s.repo.UpdateNotes(ctx, userID, recordID, notes, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update notes",
			slog.String("record_id", recordID),
			slog.String("user_id", userID),
			logger.Err(err),
		)
		return nil, err
	}

	return rec, nil
}

// Remove deletes the record if userID owns it. Removing a missing record is not an error.
func (s *Service) Remove(ctx context.Context, userID, recordID string) error {
	n, err := s.repo.Delete(ctx, userID, recordID)
	if err != nil {
		s.log.Error("failed to delete record",
			slog.String("record_id", recordID),
			slog.String("user_id", userID),
			logger.Err(err),
		)
		return err
	}

	if n == 0 {
		s.log.Debug("delete matched no record", slog.String("record_id", recordID), slog.String("user_id", userID))
		return nil
	}

	s.log.Info("record deleted", slog.String("record_id", recordID), slog.String("user_id", userID))
	return nil
}
