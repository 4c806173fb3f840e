package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/repository/contract"
	"portfolio-web/pkg/store"

	"github.com/golang-jwt/jwt/v5"
)

// Browsers drop cookies larger than about 4KB.
const maxCookieSize = 4093

type sessionClaims struct {
	Values    map[string]json.RawMessage `json:"v"`
	Permanent bool                       `json:"p,omitempty"`
	jwt.RegisteredClaims
}

type cookieSessionRepository struct {
	secret            []byte
	permanentLifetime time.Duration
	logger            logger.ILogger
	now               func() time.Time
}

// NewCookieSessionRepository stores the whole session in the cookie as an
// HS256-signed token. Nothing is kept server-side.
func NewCookieSessionRepository(secret string, permanentLifetime time.Duration, log logger.ILogger) contract.SessionRepository {
	return &cookieSessionRepository{
		secret:            []byte(secret),
		permanentLifetime: permanentLifetime,
		logger:            log,
		now:               time.Now,
	}
}

func (r *cookieSessionRepository) Load(_ context.Context, token string) (*store.Session, error) {
	if token == "" {
		return store.NewSession(""), nil
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			r.logger.Warn("Session", "Discarding invalid session cookie", map[string]interface{}{"error": err.Error()})
		}
		return store.NewSession(""), nil
	}

	s := store.NewSession("")
	if claims.Values != nil {
		s.Values = claims.Values
	}
	s.Permanent = claims.Permanent
	return s, nil
}

func (r *cookieSessionRepository) Save(_ context.Context, s *store.Session) (string, error) {
	now := r.now()
	claims := sessionClaims{
		Values:    s.Values,
		Permanent: s.Permanent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			// Every token expires, also those in browser-session cookies,
			// so a copied cookie cannot be replayed indefinitely.
			ExpiresAt: jwt.NewNumericDate(now.Add(r.permanentLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", err
	}

	if len(token) > maxCookieSize {
		r.logger.Warn("Session", "Session cookie exceeds browser limit and may be dropped", map[string]interface{}{
			"size":  len(token),
			"limit": maxCookieSize,
		})
	}
	return token, nil
}

func (r *cookieSessionRepository) Delete(_ context.Context, _ *store.Session) error {
	return nil
}

// Touch is a no-op: the token carries its own expiry.
func (r *cookieSessionRepository) Touch(_ context.Context, _ *store.Session) error {
	return nil
}
