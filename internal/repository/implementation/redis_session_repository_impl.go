package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/repository/contract"
	"portfolio-web/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "portfolio:session:"

type redisSessionRepository struct {
	rdb               *redis.Client
	idleTimeout       time.Duration
	permanentLifetime time.Duration
	logger            logger.ILogger
}

func NewRedisSessionRepository(rdb *redis.Client, idleTimeout, permanentLifetime time.Duration, log logger.ILogger) contract.SessionRepository {
	return &redisSessionRepository{
		rdb:               rdb,
		idleTimeout:       idleTimeout,
		permanentLifetime: permanentLifetime,
		logger:            log,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *redisSessionRepository) Load(ctx context.Context, token string) (*store.Session, error) {
	if token == "" {
		return store.NewSession(uuid.NewString()), nil
	}

	blob, err := r.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.NewSession(uuid.NewString()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s, err := store.Decode(blob)
	if err != nil {
		r.logger.Warn("Session", "Discarding corrupt session", map[string]interface{}{"error": err.Error()})
		return store.NewSession(uuid.NewString()), nil
	}
	s.ID = token
	return s, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, s *store.Session) (string, error) {
	if s.Cleared() {
		if err := r.Delete(ctx, s); err != nil {
			r.logger.Warn("Session", "Failed to delete cleared session", map[string]interface{}{"error": err.Error()})
		}
		s.ID = uuid.NewString()
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	blob, err := s.Encode()
	if err != nil {
		return "", err
	}

	if err := r.rdb.Set(ctx, sessionKey(s.ID), blob, r.ttl(s)).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return s.ID, nil
}

// Touch extends the key expiry. A key that already expired stays gone.
func (r *redisSessionRepository) Touch(ctx context.Context, s *store.Session) error {
	if s.ID == "" {
		return nil
	}
	if err := r.rdb.Expire(ctx, sessionKey(s.ID), r.ttl(s)).Err(); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) ttl(s *store.Session) time.Duration {
	if s.Permanent {
		return r.permanentLifetime
	}
	return r.idleTimeout
}

func (r *redisSessionRepository) Delete(ctx context.Context, s *store.Session) error {
	if s.ID == "" {
		return nil
	}
	return r.rdb.Del(ctx, sessionKey(s.ID)).Err()
}
