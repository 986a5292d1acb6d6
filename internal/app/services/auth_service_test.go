package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/auth"
	"github.com/yigit/brainora/internal/pkg/validation"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}

func newTestAuthService(users *mockUserStore, sessions *mockSessionStore) *authServiceImpl {
	tokens := auth.NewTokenService(auth.TokenConfig{SecretKey: "test-secret", Issuer: "brainora-test"})
	return NewAuthService(users, sessions, tokens, time.Hour, zerolog.Nop()).(*authServiceImpl)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	pw := "correct horse"

	users := newMockUserStore(
		&models.User{Username: "alice", Email: "alice@example.com", Password: hashed(t, pw), IsActive: true},
		&models.User{Username: "bob", Email: "shared@example.com", Password: hashed(t, pw), IsActive: true},
		// carol's username collides with bob's email, so that identifier is ambiguous
		&models.User{Username: "shared@example.com", Email: "carol@example.com", Password: hashed(t, pw), IsActive: true},
		&models.User{Username: "dave", Email: "dave@example.com", Password: hashed(t, pw), IsActive: false},
	)
	svc := newTestAuthService(users, newMockSessionStore())

	t.Run("by username", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "alice", pw)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.Contains(t, users.lastLogin, u.ID)
	})

	t.Run("by email", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "alice@example.com", pw)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	failures := map[string][2]string{
		"wrong password":       {"alice", "nope"},
		"unknown identifier":   {"zoe", pw},
		"ambiguous identifier": {"shared@example.com", pw},
		"inactive account":     {"dave", pw},
		"empty identifier":     {"", pw},
	}
	for name, in := range failures {
		t.Run(name, func(t *testing.T) {
			u, err := svc.Authenticate(ctx, in[0], in[1])
			assert.Nil(t, u)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	validForm := func() dto.SignupForm {
		return dto.SignupForm{
			Username:  "newstudent",
			Email:     "new@example.com",
			Password:  "Xk9!trombone",
			Password2: "Xk9!trombone",
			CollegeID: "BR-2024-17",
		}
	}

	t.Run("creates hashed active user", func(t *testing.T) {
		users := newMockUserStore()
		svc := newTestAuthService(users, newMockSessionStore())

		u, err := svc.Register(ctx, validForm())
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.True(t, u.IsActive)
		assert.Nil(t, u.Semester)
		assert.NotEqual(t, "Xk9!trombone", u.Password)
		assert.True(t, auth.CheckPassword(u.Password, "Xk9!trombone"))
	})

	t.Run("duplicate email fails without creating", func(t *testing.T) {
		users := newMockUserStore(&models.User{Username: "old", Email: "NEW@example.com", IsActive: true})
		svc := newTestAuthService(users, newMockSessionStore())

		_, err := svc.Register(ctx, validForm())
		require.Error(t, err)

		var verrs validation.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, []string{"A user with this email already exists."}, verrs.For("email"))
		assert.Len(t, users.users, 1)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := newMockUserStore(&models.User{Username: "newstudent", Email: "x@example.com"})
		svc := newTestAuthService(users, newMockSessionStore())

		_, err := svc.Register(ctx, validForm())
		var verrs validation.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, []string{"A user with that username already exists."}, verrs.For("username"))
	})

	t.Run("password mismatch", func(t *testing.T) {
		svc := newTestAuthService(newMockUserStore(), newMockSessionStore())
		form := validForm()
		form.Password2 = "something-else"

		_, err := svc.Register(ctx, form)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		var verrs validation.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.For("password_2"), "The two password fields didn't match.")
	})

	t.Run("password longer than bcrypt accepts is a field error", func(t *testing.T) {
		users := newMockUserStore()
		svc := newTestAuthService(users, newMockSessionStore())
		form := validForm()
		form.Password = strings.Repeat("Zq7!", 20)
		form.Password2 = form.Password

		_, err := svc.Register(ctx, form)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		var verrs validation.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.For("password_2"), "This password is too long. It must contain at most 72 bytes.")
		assert.Empty(t, users.users)
	})
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	users := newMockUserStore(&models.User{Username: "alice", IsActive: true})
	sessions := newMockSessionStore()
	svc := newTestAuthService(users, sessions)

	user, err := users.GetByID(ctx, 1)
	require.NoError(t, err)

	info, err := svc.StartSession(ctx, user, "10.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, info.Token)
	assert.Len(t, sessions.sessions, 1)

	session, resolved, err := svc.ResolveSession(ctx, info.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "10.0.0.1", session.IP)

	require.NoError(t, svc.EndSession(ctx, info.Token))
	assert.Empty(t, sessions.sessions)

	_, _, err = svc.ResolveSession(ctx, info.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestResolveSession_Rejects(t *testing.T) {
	ctx := context.Background()
	users := newMockUserStore(&models.User{Username: "alice", IsActive: true})
	sessions := newMockSessionStore()
	svc := newTestAuthService(users, sessions)

	_, _, err := svc.ResolveSession(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)

	user, _ := users.GetByID(ctx, 1)
	info, err := svc.StartSession(ctx, user, "", "")
	require.NoError(t, err)

	users.users[1].IsActive = false
	_, _, err = svc.ResolveSession(ctx, info.Token)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestPurgeExpiredSessions(t *testing.T) {
	sessions := newMockSessionStore()
	sessions.sessions["old"] = &models.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)}
	sessions.sessions["live"] = &models.Session{ID: "live", ExpiresAt: time.Now().Add(time.Minute)}
	svc := newTestAuthService(newMockUserStore(), sessions)

	n, err := svc.PurgeExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, sessions.sessions, "live")
}
