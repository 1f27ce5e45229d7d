package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelagg/pkg/apperr"
	"travelagg/pkg/auth"
	"travelagg/pkg/logger"
)

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
	logger logger.Client
	now    func() time.Time
}

func NewService(repo Repository, tokens *auth.TokenIssuer, logger logger.Client) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" {
		return nil, apperr.Validation("username and email are required")
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", logger.Err(err))
		return nil, apperr.Internal(err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Provider:     ProviderPassword,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", logger.Field{Key: "user_id", Value: u.ID})
	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		s.logger.Error("Failed to load user", logger.Err(err))
		return nil, apperr.Internal(err)
	}

	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Login rejected", logger.Field{Key: "user_id", Value: u.ID})
		return nil, invalidCredentials()
	}
	return s.issue(u)
}

// Me returns the account behind a verified token's subject.
func (s *Service) Me(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.Unauthorized("User not found")
	}
	if err != nil {
		s.logger.Error("Failed to load user", logger.Err(err))
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// OAuthSignIn finds the account with the provider-verified email, creating it
// on first sign-in, and issues a bearer token for it.
func (s *Service) OAuthSignIn(ctx context.Context, email, fullName, provider string) (*AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("provider did not return an email address")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return s.issue(u)
	}
	if !errors.Is(err, ErrNotFound) {
		s.logger.Error("Failed to load user", logger.Err(err))
		return nil, apperr.Internal(err)
	}

	username, err := s.freeUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	u = &User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		Provider:  provider,
		CreatedAt: s.now().UTC(),
	}
	if err := s.create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User created from OAuth2 sign-in",
		logger.Field{Key: "user_id", Value: u.ID},
		logger.Field{Key: "provider", Value: provider},
	)
	return s.issue(u)
}

func (s *Service) ensureAvailable(ctx context.Context, username, email string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return conflict(ErrUserExists)
	}
	if errors.Is(err, ErrNotFound) {
		_, err = s.repo.FindByEmail(ctx, email)
		if err == nil {
			return conflict(ErrUserExists)
		}
	}
	if !errors.Is(err, ErrNotFound) {
		s.logger.Error("Failed to check existing user", logger.Err(err))
		return apperr.Internal(err)
	}
	return nil
}

// freeUsername derives a username from the email's local part, adding a
// short suffix while it is taken.
func (s *Service) freeUsername(ctx context.Context, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	if len(base) < 3 {
		base = "traveller"
	}

	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		_, err := s.repo.FindByUsername(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			s.logger.Error("Failed to check existing user", logger.Err(err))
			return "", apperr.Internal(err)
		}
		candidate = fmt.Sprintf("%s-%s", base, uuid.NewString()[:6])
	}
	return "", conflict(ErrUserExists)
}

func (s *Service) create(ctx context.Context, u *User) error {
	err := s.repo.Create(ctx, u)
	if errors.Is(err, ErrUserExists) {
		return conflict(err)
	}
	if err != nil {
		s.logger.Error("Failed to create user", logger.Err(err))
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) issue(u *User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		s.logger.Error("Failed to issue token", logger.Err(err))
		return nil, apperr.Internal(err)
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		User:        u,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
