package memory

import (
	"context"
	"time"

	"portfolio-web/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps encoded sessions in process memory. The cookie
// only carries the session id.
type SessionRepository struct {
	cache             *cache.Cache
	idleTimeout       time.Duration
	permanentLifetime time.Duration
}

func NewSessionRepository(idleTimeout, permanentLifetime time.Duration) *SessionRepository {
	// Purge expired items every 10 minutes
	c := cache.New(idleTimeout, 10*time.Minute)
	return &SessionRepository{
		cache:             c,
		idleTimeout:       idleTimeout,
		permanentLifetime: permanentLifetime,
	}
}

func (r *SessionRepository) Load(_ context.Context, token string) (*store.Session, error) {
	if token == "" {
		return store.NewSession(uuid.NewString()), nil
	}
	x, found := r.cache.Get(token)
	if !found {
		return store.NewSession(uuid.NewString()), nil
	}
	s, err := store.Decode(x.([]byte))
	if err != nil {
		return store.NewSession(uuid.NewString()), nil
	}
	s.ID = token
	return s, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *store.Session) (string, error) {
	if s.Cleared() {
		// Rotate the id so a cleared session cannot be resumed with the old cookie.
		_ = r.Delete(ctx, s)
		s.ID = uuid.NewString()
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	blob, err := s.Encode()
	if err != nil {
		return "", err
	}

	r.cache.Set(s.ID, blob, r.ttl(s))
	return s.ID, nil
}

func (r *SessionRepository) Touch(_ context.Context, s *store.Session) error {
	x, found := r.cache.Get(s.ID)
	if !found {
		return nil
	}
	r.cache.Set(s.ID, x, r.ttl(s))
	return nil
}

func (r *SessionRepository) ttl(s *store.Session) time.Duration {
	if s.Permanent {
		return r.permanentLifetime
	}
	return r.idleTimeout
}

func (r *SessionRepository) Delete(_ context.Context, s *store.Session) error {
	r.cache.Delete(s.ID)
	return nil
}
