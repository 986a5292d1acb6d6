package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/logger"
	"github.com/yigit/brainora/internal/pkg/redis"
)

const sessionKeyPrefix = "brainora:session:"

// RedisSessionRepository stores login sessions in Redis with a TTL matching
// the session expiry.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new RedisSessionRepository
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create stores a new session.
func (r *RedisSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperrors.ErrSessionExpired
	}

	if err := r.client.SetJSON(ctx, sessionKey(session.ID), session, ttl); err != nil {
		logger.Error().Err(err).Int64("userID", session.UserID).Msg("Error storing session in redis")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// Get loads a session by id.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	s := &models.Session{}
	found, err := r.client.GetJSON(ctx, sessionKey(id), s)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error loading session from redis")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	if !found {
		return nil, apperrors.ErrSessionNotFound
	}
	if s.Expired(time.Now()) {
		return nil, apperrors.ErrSessionExpired
	}
	return s, nil
}

// Delete removes a session.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, sessionKey(id)); err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error deleting session from redis")
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (r *RedisSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
