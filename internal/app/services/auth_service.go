package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/auth"
	"github.com/yigit/brainora/internal/pkg/metrics"
	"github.com/yigit/brainora/internal/pkg/validation"
)

const (
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "A user with this email already exists."
)

// SessionInfo is what a caller needs to set the session cookie.
type SessionInfo struct {
	Session   *models.Session
	Token     string
	ExpiresAt time.Time
}

// AuthService handles login, signup and the server-side session lifecycle.
type AuthService interface {
	// Authenticate resolves an identifier (username or email) and password to
	// a single active user. Every failure is ErrInvalidCredentials.
	Authenticate(ctx context.Context, identifier, password string) (*models.User, error)
	// Register validates the signup form and creates the user.
	Register(ctx context.Context, form dto.SignupForm) (*models.User, error)
	StartSession(ctx context.Context, user *models.User, ip, userAgent string) (*SessionInfo, error)
	// ResolveSession returns the user behind a session token.
	ResolveSession(ctx context.Context, token string) (*models.Session, *models.User, error)
	EndSession(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	users    UserStore
	sessions SessionStore
	tokens   *auth.TokenService
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, sessions SessionStore, tokens *auth.TokenService, ttl time.Duration, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authServiceImpl) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.resolve(ctx, identifier, password)
	metrics.RecordLogin(err == nil)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}
	return user, nil
}

func (s *authServiceImpl) resolve(ctx context.Context, identifier, password string) (*models.User, error) {
	if identifier == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	matches, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(matches) != 1 {
		if len(matches) > 1 {
			s.logger.Warn().Str("identifier", identifier).Msg("Login identifier matches more than one account")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	user := matches[0]
	if !auth.CheckPassword(user.Password, password) || !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *authServiceImpl) Register(ctx context.Context, form dto.SignupForm) (*models.User, error) {
	form.Normalize()
	errs := form.Validate()

	if form.Username != "" && !errs.Has("username") {
		taken, err := s.users.UsernameExists(ctx, form.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", msgUsernameTaken)
		}
	}
	if form.Email != "" && !errs.Has("email") {
		taken, err := s.users.EmailExists(ctx, form.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", msgEmailTaken)
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:   form.Username,
		Email:      form.Email,
		Password:   hash,
		CollegeID:  form.CollegeID,
		IsActive:   true,
		DateJoined: s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameExists) {
			return nil, validation.Errors{{Field: "username", Message: msgUsernameTaken}}
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

func (s *authServiceImpl) StartSession(ctx context.Context, user *models.User, ip, userAgent string) (*SessionInfo, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.Issue(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, err
	}
	return &SessionInfo{Session: session, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

func (s *authServiceImpl) ResolveSession(ctx context.Context, token string) (*models.Session, *models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, apperrors.ErrSessionExpired
		}
		return nil, nil, apperrors.ErrSessionInvalid
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.UserID != claims.UserID {
		return nil, nil, apperrors.ErrSessionInvalid
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrSessionNotFound
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}
	return session, user, nil
}

func (s *authServiceImpl) EndSession(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		// Nothing server-side to remove for a token we cannot read.
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func (s *authServiceImpl) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
