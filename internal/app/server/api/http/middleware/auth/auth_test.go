package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

type fakeResolver struct {
	sessions map[string]string
	tokens   map[string]string
}

func (f *fakeResolver) Resolve(_ context.Context, token string) (string, error) {
	if id, ok := f.sessions[token]; ok {
		return id, nil
	}
	return "", errors.New("session not found")
}

func (f *fakeResolver) ResolveAccessToken(_ context.Context, token string) (string, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid access token")
}

type whoamiOutput struct {
	Body struct {
		UserID string `json:"user_id"`
	}
}

func newTestAPI(t *testing.T) humatest.TestAPI {
	cfg := huma.DefaultConfig("Test API", "1.0.0")
	cfg.CreateHooks = nil
	_, api := humatest.New(t, cfg)

	a := New(&fakeResolver{
		sessions: map[string]string{"cookie-tok": "u-cookie"},
		tokens:   map[string]string{"jwt-tok": "u-bearer"},
	}, slog.Default())

	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{a.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		userID, _ := GetUserID(ctx)
		out := &whoamiOutput{}
		out.Body.UserID = userID
		return out, nil
	})

	return api
}

func TestAuth_Middleware(t *testing.T) {
	tests := []struct {
		name           string
		headers        []any
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "no credentials",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "session cookie",
			headers:        []any{"Cookie: vinylscan_session=cookie-tok"},
			expectedStatus: http.StatusOK,
			expectedUser:   "u-cookie",
		},
		{
			name:           "bearer token",
			headers:        []any{"Authorization: Bearer jwt-tok"},
			expectedStatus: http.StatusOK,
			expectedUser:   "u-bearer",
		},
		{
			name:           "cookie wins over bearer",
			headers:        []any{"Cookie: vinylscan_session=cookie-tok", "Authorization: Bearer jwt-tok"},
			expectedStatus: http.StatusOK,
			expectedUser:   "u-cookie",
		},
		{
			name:           "stale cookie falls back to bearer",
			headers:        []any{"Cookie: vinylscan_session=gone", "Authorization: Bearer jwt-tok"},
			expectedStatus: http.StatusOK,
			expectedUser:   "u-bearer",
		},
		{
			name:           "unknown bearer",
			headers:        []any{"Authorization: Bearer nope"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newTestAPI(t).Get("/whoami", tt.headers...)

			assert.Equal(t, tt.expectedStatus, resp.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"success":false,"error":"Not authenticated"}`, resp.Body.String())
				return
			}
			assert.JSONEq(t, `{"user_id":"`+tt.expectedUser+`"}`, resp.Body.String())
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
		ok       bool
	}{
		{header: "Bearer abc", expected: "abc", ok: true},
		{header: "bearer abc", expected: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}
