package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"vinylscan/internal/utils/logger"
)

type Servicer interface {
	Register(ctx context.Context, email, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	cost      int
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
		cost:      bcrypt.DefaultCost,
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)

	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("validation failed", slog.String("email", email), logger.Err(err))
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{Email: email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, ErrAlreadyExists
		}
		s.log.Error("failed to create user", slog.String("email", email), logger.Err(err))
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Authenticate checks the password. Unknown addresses and wrong passwords are
// both ErrInvalidAuth.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidAuth
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}
