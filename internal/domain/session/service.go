package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

type Session struct {
	Token       string
	AccessToken string
	UserID      string
	ExpiresAt   time.Time
}

type Servicer interface {
	Create(ctx context.Context, userID string) (Session, error)
	Resolve(ctx context.Context, token string) (string, error)
	ResolveAccessToken(ctx context.Context, accessToken string) (string, error)
	Destroy(ctx context.Context, token string) error
	DestroyAccessToken(ctx context.Context, accessToken string) error
}

type Service struct {
	store  Store
	tokens *TokenIssuer
	ttl    time.Duration
	log    *slog.Logger
	now    func() time.Time
}

func NewService(store Store, tokens *TokenIssuer, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		log:    log.With(slog.String("component", "session_service")),
		now:    time.Now,
	}
}

// Create starts a session for userID and issues its access token.
func (s *Service) Create(ctx context.Context, userID string) (Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return Session{}, fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(tokenBytes)

	now := s.now()
	expiresAt := now.Add(s.ttl)

	if err := s.store.Set(ctx, hashToken(token), userID, expiresAt); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	access, err := s.tokens.Issue(userID, token, now, expiresAt)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:       token,
		AccessToken: access,
		UserID:      userID,
		ExpiresAt:   expiresAt,
	}, nil
}

// Resolve returns the user id behind a live session token.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotFound
	}
	return s.store.Get(ctx, hashToken(token))
}

// ResolveAccessToken verifies the JWT and checks that its session is still live.
func (s *Service) ResolveAccessToken(ctx context.Context, accessToken string) (string, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		return "", err
	}

	userID, err := s.Resolve(ctx, claims.ID)
	if err != nil {
		return "", err
	}

	if userID != claims.UserID {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *Service) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Clear(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// DestroyAccessToken ends the session behind a valid access token. Invalid
// tokens are ignored.
func (s *Service) DestroyAccessToken(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			s.log.Debug("ignoring invalid access token on logout")
			return nil
		}
		return err
	}
	return s.Destroy(ctx, claims.ID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
