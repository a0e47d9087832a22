package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie set by the Board Service.
const CookieName = "board_session"

// Manager issues and resolves session cookies. The cookie value is an
// opaque uuid token plus an HMAC signature, so forged tokens never
// reach the store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager over a store
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Start opens a session for a username and returns the cookie value.
func (m *Manager) Start(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := m.store.Set(ctx, token, username, m.ttl); err != nil {
		return "", err
	}
	return token + "." + m.sign(token), nil
}

// Resolve returns the username for a cookie value, or "" when the
// cookie is invalid, unknown or expired.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (string, error) {
	token, ok := m.verify(cookieValue)
	if !ok {
		return "", nil
	}
	return m.store.Get(ctx, token)
}

// End closes the session for a cookie value. Idempotent.
func (m *Manager) End(ctx context.Context, cookieValue string) error {
	token, ok := m.verify(cookieValue)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// ClearAll removes every session server-wide
func (m *Manager) ClearAll(ctx context.Context) error {
	return m.store.Clear(ctx)
}

// TTL returns the session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(cookieValue string) (string, bool) {
	token, sig, ok := strings.Cut(cookieValue, ".")
	if !ok || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(token))) {
		return "", false
	}
	return token, true
}
