package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockStore is a mock implementation of the Store interface for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key, userID string, expiresAt time.Time) error {
	args := m.Called(ctx, key, userID, expiresAt)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestService(store Store) *Service {
	return NewService(store, NewTokenIssuer("test-secret"), time.Hour, slog.Default())
}

func TestService_Create(t *testing.T) {
	mockStore := new(MockStore)
	service := newTestService(mockStore)

	mockStore.On("Set", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) == 64
	}), "u1", mock.MatchedBy(func(expiresAt time.Time) bool {
		return expiresAt.After(time.Now().Add(59 * time.Minute))
	})).Return(nil)

	sess, err := service.Create(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", sess.UserID)
	// 32 random bytes, unpadded base64url
	assert.Len(t, sess.Token, 43)
	assert.NotEmpty(t, sess.AccessToken)

	claims, err := NewTokenIssuer("test-secret").Parse(sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, sess.Token, claims.ID)

	mockStore.AssertExpectations(t)
}

func TestService_Create_StoreError(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Set", mock.Anything, mock.Anything, "u1", mock.Anything).Return(errors.New("database error"))

	_, err := newTestService(mockStore).Create(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestService_Resolve(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		mockStore := new(MockStore)
		_, err := newTestService(mockStore).Resolve(context.Background(), "")
		assert.ErrorIs(t, err, ErrNotFound)
		mockStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("hashed lookup", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("Get", mock.Anything, hashToken("tok")).Return("u1", nil)

		userID, err := newTestService(mockStore).Resolve(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})
}

func TestService_AccessTokenLifecycle(t *testing.T) {
	service := newTestService(NewMemoryStore())
	ctx := context.Background()

	sess, err := service.Create(ctx, "u1")
	require.NoError(t, err)

	userID, err := service.ResolveAccessToken(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	require.NoError(t, service.DestroyAccessToken(ctx, sess.AccessToken))

	_, err = service.ResolveAccessToken(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ResolveAccessToken_Invalid(t *testing.T) {
	service := newTestService(NewMemoryStore())
	ctx := context.Background()

	sess, err := service.Create(ctx, "u1")
	require.NoError(t, err)

	forged, err := NewTokenIssuer("other-secret").Issue("u1", sess.Token, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ResolveAccessToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestService_ResolveAccessToken_UserMismatch(t *testing.T) {
	service := newTestService(NewMemoryStore())
	ctx := context.Background()

	sess, err := service.Create(ctx, "u1")
	require.NoError(t, err)

	other, err := service.tokens.Issue("u2", sess.Token, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = service.ResolveAccessToken(ctx, other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Destroy(t *testing.T) {
	t.Run("empty token is a no-op", func(t *testing.T) {
		mockStore := new(MockStore)
		assert.NoError(t, newTestService(mockStore).Destroy(context.Background(), ""))
		mockStore.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("store error", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("Clear", mock.Anything, hashToken("tok")).Return(errors.New("database error"))
		assert.Error(t, newTestService(mockStore).Destroy(context.Background(), "tok"))
	})

	t.Run("invalid access token is ignored", func(t *testing.T) {
		mockStore := new(MockStore)
		assert.NoError(t, newTestService(mockStore).DestroyAccessToken(context.Background(), "garbage"))
		mockStore.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})
}
