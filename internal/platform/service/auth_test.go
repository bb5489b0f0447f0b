package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/verysecretivesoftware/platform/internal/platform/domain"
	"github.com/verysecretivesoftware/platform/internal/platform/service"
	"github.com/verysecretivesoftware/platform/internal/platform/store/drivers/sqlite"
	"github.com/verysecretivesoftware/platform/pkg/idx"
	"github.com/verysecretivesoftware/platform/pkg/jwtx"
)

func newAuthService(t *testing.T) (*service.AuthService, *jwtx.HS256Verifier) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "auth.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("auth-service-test-secret")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, "platform-api")
	require.NoError(t, err)

	return &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "platform-api",
		AccessTTL: 24 * time.Hour,
	}, verifier
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		svc, _ := newAuthService(t)

		user, err := svc.Register(ctx, "alice", "alice@example.com", "correct")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice", user.Username)
		require.NotEqual(t, "correct", user.PasswordHash)
		require.NotContains(t, user.PasswordHash, "correct")
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, "bob", "bob@example.com", "pw-one")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "bob", "bob2@example.com", "pw-two")
		require.ErrorIs(t, err, service.ErrUsernameTaken)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, "", "x@example.com", "pw")
		require.ErrorIs(t, err, service.ErrInvalidInput)

		_, err = svc.Register(ctx, "carol", "carol@example.com", "")
		require.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		svc, verifier := newAuthService(t)

		created, err := svc.Register(ctx, "alice", "alice@example.com", "correct")
		require.NoError(t, err)

		session, err := svc.Login(ctx, "alice", "correct")
		require.NoError(t, err)
		require.Equal(t, created.ID, session.User.ID)

		claims, err := verifier.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, created.ID, claims.Subject)
		require.Equal(t, "alice", claims.Username)
		require.WithinDuration(t,
			time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute,
			"token lifetime is 24h from issuance")
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, "alice", "alice@example.com", "correct")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice", "incorrect")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Login(ctx, "nobody", "whatever")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("malformed stored hash is a plain credential failure", func(t *testing.T) {
		svc, _ := newAuthService(t)

		corrupt := domain.User{
			ID:           idx.New().String(),
			Username:     "mallory",
			Email:        "mallory@example.com",
			PasswordHash: "corrupted-not-bcrypt",
		}
		require.NoError(t, svc.Store.Users().CreateUser(ctx, corrupt))

		_, err := svc.Login(ctx, "mallory", "anything")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Login(ctx, "", "pw")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, err = svc.Login(ctx, "alice", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
