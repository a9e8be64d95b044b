package record

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, record *Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) UpdateNotes(ctx context.Context, userID, recordID, notes string, updatedAt time.Time) (*Record, error) {
	args := m.Called(ctx, userID, recordID, notes, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID, recordID string) (int64, error) {
	args := m.Called(ctx, userID, recordID)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default(), WithClock(func() time.Time { return fixedNow }))
}

func strPtr(s string) *string { return &s }

func TestService_Add(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *Record) bool {
		return r.UserID == "u1" && r.Artist == "Miles Davis"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*Record).ID = "r1"
	}).Return(nil)

	year := 1959
	rec, err := service.Add(context.Background(), "u1", Data{
		Artist: strPtr("Miles Davis"),
		Album:  strPtr("Kind of Blue"),
		Year:   &year,
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, []string{}, rec.Genres)
	assert.Equal(t, []string{}, rec.Styles)
	assert.Equal(t, []string{}, rec.Musicians)
	assert.Equal(t, "", rec.Notes)
	assert.Nil(t, rec.MasterURL)
	assert.Nil(t, rec.ReleaseURL)
	assert.Equal(t, time.UTC, rec.AddedAt.Location())
	assert.True(t, rec.AddedAt.Equal(fixedNow))
	assert.Equal(t, rec.AddedAt, rec.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestService_Add_Errors(t *testing.T) {
	t.Run("no owner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		_, err := newTestService(mockRepo).Add(context.Background(), "", Data{})
		assert.ErrorIs(t, err, ErrInvalidData)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		dbErr := errors.New("connection refused")
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := newTestService(mockRepo).Add(context.Background(), "u1", Data{})
		assert.Equal(t, dbErr, err)
	})
}

func TestService_Collection(t *testing.T) {
	tests := []struct {
		name     string
		records  []Record
		err      error
		expected []Record
		wantErr  bool
	}{
		{
			name:     "records",
			records:  []Record{{ID: "r2", UserID: "u1"}, {ID: "r1", UserID: "u1"}},
			expected: []Record{{ID: "r2", UserID: "u1"}, {ID: "r1", UserID: "u1"}},
		},
		{
			name:     "empty collection is not nil",
			records:  nil,
			expected: []Record{},
		},
		{
			name:    "store failure",
			err:     errors.New("boom"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			if tt.records == nil {
				mockRepo.On("ListByUser", mock.Anything, "u1").Return(nil, tt.err)
			} else {
				mockRepo.On("ListByUser", mock.Anything, "u1").Return(tt.records, tt.err)
			}

			got, err := newTestService(mockRepo).Collection(context.Background(), "u1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestService_UpdateNotes(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		mockRepo := new(MockRepository)
		updated := &Record{ID: "r1", UserID: "u1", Notes: "first pressing"}
		mockRepo.On("UpdateNotes", mock.Anything, "u1", "r1", "first pressing", fixedNow.UTC()).Return(updated, nil)

		rec, err := newTestService(mockRepo).UpdateNotes(context.Background(), "u1", "r1", "first pressing")
		require.NoError(t, err)
		assert.Equal(t, updated, rec)
	})

	t.Run("not owned", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("UpdateNotes", mock.Anything, "u2", "r1", "", mock.Anything).Return(nil, ErrNotFound)

		_, err := newTestService(mockRepo).UpdateNotes(context.Background(), "u2", "r1", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("UpdateNotes", mock.Anything, "u1", "r1", "x", mock.Anything).Return(nil, errors.New("boom"))

		_, err := newTestService(mockRepo).UpdateNotes(context.Background(), "u1", "r1", "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "boom")
	})
}

func TestService_Remove(t *testing.T) {
	tests := []struct {
		name    string
		removed int64
		err     error
		wantErr bool
	}{
		{name: "deleted", removed: 1},
		{name: "nothing matched", removed: 0},
		{name: "store failure", err: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockRepo.On("Delete", mock.Anything, "u1", "r1").Return(tt.removed, tt.err)

			err := newTestService(mockRepo).Remove(context.Background(), "u1", "r1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_LogsStoreFailure(t *testing.T) {
	var buf bytes.Buffer
	mockRepo := new(MockRepository)
	mockRepo.On("Delete", mock.Anything, "u1", "r1").Return(int64(0), errors.New("connection reset"))

	service := NewService(mockRepo, slog.New(slog.NewJSONHandler(&buf, nil)))
	require.Error(t, service.Remove(context.Background(), "u1", "r1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "failed to delete record", entry["msg"])
	assert.Equal(t, "connection reset", entry["error"])
	assert.Equal(t, "record_service", entry["component"])
}
