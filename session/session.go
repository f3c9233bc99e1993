// Package session identifies the renter across requests. A signed token
// carrying the renter email is issued after a booking and the email is handed
// to handlers through the request context.
package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
)

const issuer = "car-rental-api"

// expiresAtKey is the user extension holding the token's exp as unix seconds
const expiresAtKey = "exp"

// ErrInvalidToken is returned for tokens that are malformed, expired or not
// signed with the session secret
var ErrInvalidToken = errors.New("invalid session token")

type contextKey struct{}

// WithEmail returns a copy of ctx carrying the session email
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextKey{}, email)
}

// EmailFromContext returns the session email stored by WithEmail
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(contextKey{}).(string)
	return email, ok && email != ""
}

// Manager issues and authenticates session tokens
type Manager struct {
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
	authenticator auth.Authenticator
}

// NewManager sets up go-guardian with a cached bearer strategy backed by JWT
// verification. Verified tokens are cached for ttl.
func NewManager(ctx context.Context, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	m := &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	cache := store.NewFIFO(ctx, ttl)
	m.authenticator = auth.New()
	m.authenticator.EnableStrategy(bearer.CachedStrategyKey, bearer.New(m.verify, cache))
	return m
}

// Issue returns a signed token identifying email
func (m *Manager) Issue(email string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies token and returns the email it identifies
func (m *Manager) Parse(token string) (string, error) {
	claims, err := m.parseClaims(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (m *Manager) parseClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) verify(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims, err := m.parseClaims(token)
	if err != nil {
		return nil, err
	}
	exp := strconv.FormatInt(claims.ExpiresAt.Unix(), 10)
	return auth.NewDefaultUser(claims.Subject, claims.Subject, nil, map[string][]string{expiresAtKey: {exp}}), nil
}

// expired reports whether the token behind a cached user has passed its exp.
// The cache keeps entries for the session ttl from first use, which can
// outlive the token.
func (m *Manager) expired(user auth.Info) bool {
	exp := user.Extensions()[expiresAtKey]
	if len(exp) == 0 {
		return true
	}
	unix, err := strconv.ParseInt(exp[0], 10, 64)
	if err != nil {
		return true
	}
	return !m.now().Before(time.Unix(unix, 0))
}

// Middleware authenticates the bearer token when one is sent and stores the
// email in the request context. Requests without a valid token pass through
// anonymously; handlers decide what an absent session means.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := m.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Debugw("session not authenticated", "url", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if m.expired(user) {
			zap.S().Debugw("session expired", "url", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), user.UserName())))
	})
}
