package contract

import (
	"context"

	"portfolio-web/pkg/store"
)

// SessionRepository persists visitor sessions. The token is whatever the
// backend needs in the cookie: the signed payload for the cookie backend,
// an opaque id for server-side backends.
type SessionRepository interface {
	// Load never fails on an unknown, expired or tampered token; it returns
	// a fresh session instead. Errors are reserved for backend outages.
	Load(ctx context.Context, token string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) (string, error)
	Delete(ctx context.Context, session *store.Session) error
	// Touch restarts the idle timeout of an unchanged session.
	Touch(ctx context.Context, session *store.Session) error
}
