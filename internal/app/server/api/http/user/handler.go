package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"vinylscan/internal/app/server/api/http/middleware/auth"
	"vinylscan/internal/app/server/api/http/response"
	"vinylscan/internal/domain/session"
	"vinylscan/internal/domain/user"
	"vinylscan/internal/utils/logger"
)

const credentialsRequired = "Email and password required"

type Handler struct {
	service      user.Servicer
	session      session.Servicer
	secureCookie bool
	log          *slog.Logger
	middleware   huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, secureCookie bool, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:      service,
		session:      session,
		secureCookie: secureCookie,
		log:          log.With(slog.String("component", "auth_handler")),
		middleware:   middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	if input.Body == nil || input.Body.Email == "" || input.Body.Password == "" {
		return nil, response.Fail(http.StatusBadRequest, credentialsRequired)
	}

	u, err := h.service.Register(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, response.Fail(http.StatusBadRequest, err.Error())
	}

	return &registerOutput{
		Body: registerResponse{
			Success: true,
			User:    userView{ID: u.ID, Email: u.Email},
		},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	if input.Body == nil || input.Body.Email == "" || input.Body.Password == "" {
		return nil, response.Fail(http.StatusBadRequest, credentialsRequired)
	}

	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, response.Fail(http.StatusUnauthorized, err.Error())
	}

	sess, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("failed to create session", slog.String("user_id", u.ID), logger.Err(err))
		return nil, response.Fail(http.StatusUnauthorized, err.Error())
	}

	return &loginOutput{
		SetCookie: h.cookie(sess.Token, sess.ExpiresAt).String(),
		Body: loginResponse{
			Success: true,
			Session: sessionView{
				AccessToken: sess.AccessToken,
				ExpiresAt:   sess.ExpiresAt.Unix(),
				User:        userView{ID: u.ID, Email: u.Email},
			},
		},
	}, nil
}

// logout always succeeds; store failures are only logged.
func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	if err := h.session.Destroy(ctx, input.Session); err != nil {
		h.log.Warn("failed to clear session", logger.Err(err))
	}

	if token, ok := auth.BearerToken(input.Authorization); ok {
		if err := h.session.DestroyAccessToken(ctx, token); err != nil {
			h.log.Warn("failed to clear session for access token", logger.Err(err))
		}
	}

	return &logoutOutput{
		SetCookie: h.cookie("", time.Unix(0, 0)).String(),
		Body:      response.OK{Success: true},
	}, nil
}

func (h *Handler) cookie(value string, expiresAt time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	if value == "" {
		c.MaxAge = -1
	} else if maxAge := int(time.Until(expiresAt).Seconds()); maxAge > 0 {
		c.MaxAge = maxAge
	}
	return c
}
