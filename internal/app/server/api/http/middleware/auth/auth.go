package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/goccy/go-json"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/session"
	"vinylscan/internal/utils/logger"
)

// CookieName names the session cookie.
const CookieName = "vinylscan_session"

const notAuthenticated = "Not authenticated"

// Resolver maps a session cookie or access token to a user id.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
	ResolveAccessToken(ctx context.Context, accessToken string) (string, error)
}

type Auth struct {
	session Resolver
	log     *slog.Logger
}

func New(session Resolver, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware resolves the caller from the session cookie, then from a bearer
// access token, and answers 401 when neither names a live session.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		userID, ok := a.resolve(ctx)
		if !ok {
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(http.StatusUnauthorized)
			err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]any{
				"success": false,
				"error":   notAuthenticated,
			})
			if err != nil {
				a.log.Error("write unauthorized response", logger.Err(err))
			}
			return
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func (a *Auth) resolve(ctx huma.Context) (string, bool) {
	if c, err := huma.ReadCookie(ctx, CookieName); err == nil && c.Value != "" {
		userID, err := a.session.Resolve(ctx.Context(), c.Value)
		if err == nil {
			return userID, true
		}
		a.log.Debug("session cookie rejected", logger.Err(err))
	}

	if token, ok := BearerToken(ctx.Header("Authorization")); ok {
		userID, err := a.session.ResolveAccessToken(ctx.Context(), token)
		if err == nil {
			return userID, true
		}
		a.log.Debug("access token rejected", logger.Err(err))
	}

	return "", false
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

var _ Resolver = (*session.Service)(nil)
