package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/verysecretivesoftware/platform/internal/platform/domain"
	"github.com/verysecretivesoftware/platform/internal/platform/store"
	"github.com/verysecretivesoftware/platform/pkg/cryptox"
	"github.com/verysecretivesoftware/platform/pkg/idx"
	"github.com/verysecretivesoftware/platform/pkg/jwtx"
	"github.com/verysecretivesoftware/platform/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidInput       = errors.New("invalid_input")
)

// AuthService owns credential verification and token issuance. It is a
// pure function of its inputs plus the immutable signing secret held by
// Signer; the only shared state it touches is the user store.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Login verifies the given credentials and mints a 24h access token.
// Unknown usernames, wrong passwords and malformed stored hashes all
// come back as ErrInvalidCredentials; nothing in the result or timing
// distinguishes them beyond the hash comparison itself.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Session{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrHashFormat) {
			// A corrupt hash is an operational problem worth logging,
			// but the caller must see a plain credential failure.
			l.Error("stored password hash is malformed", slog.String("user_id", user.ID))
		}
		return domain.Session{}, ErrInvalidCredentials
	}

	claims := jwtx.NewAccessClaims(user.ID, user.Username, s.Issuer, s.ttl(), time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))

	return domain.Session{Token: token, User: user}, nil
}

// Register hashes the password and inserts a new user. The plaintext is
// discarded once hashed; only the bcrypt encoding is stored.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	l.Info("user created", slog.String("user_id", user.ID))

	return user, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}
