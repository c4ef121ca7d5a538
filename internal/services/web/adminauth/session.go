package adminauth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

const (
	issuer = "festival-admin"
	// MinSecretLength is the shortest accepted signing secret.
	MinSecretLength = 32
	// DefaultTTL is the session lifetime when none is configured.
	DefaultTTL = 12 * time.Hour
)

// ErrInvalidSession reports a missing, forged or expired session token.
var ErrInvalidSession = errors.New("invalid admin session")

// Session is an authenticated admin visit.
type Session struct {
	AdminID   string
	Username  string
	ExpiresAt time.Time

	tokenID    string
	credential string
}

// Valid reports whether the session names an admin.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.AdminID) != ""
}

type claims struct {
	Username   string `json:"username"`
	Credential string `json:"cred"`
	jwt.RegisteredClaims
}

// credentialFingerprint changes whenever the admin's password hash does, so
// a reset invalidates tokens issued before it.
func credentialFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}

// Manager issues and verifies HS256 session tokens. Revoked token ids are
// kept in memory until the token would have expired anyway.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewManager builds a token manager. A non-positive ttl uses DefaultTTL.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now, revoked: map[string]time.Time{}}, nil
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session token for user.
func (m *Manager) Issue(user storage.AdminUser) (string, Session, error) {
	if strings.TrimSpace(user.ID) == "" {
		return "", Session{}, fmt.Errorf("admin id is required")
	}
	now := m.now()
	session := Session{
		AdminID:    user.ID,
		Username:   user.Username,
		ExpiresAt:  now.Add(m.ttl).UTC().Truncate(time.Second),
		tokenID:    uuid.NewString(),
		credential: credentialFingerprint(user.PasswordHash),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username:   user.Username,
		Credential: session.credential,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.tokenID,
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, session, nil
}

// Verify parses token and returns its session.
func (m *Manager) Verify(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if strings.TrimSpace(parsed.Subject) == "" || parsed.ID == "" {
		return Session{}, ErrInvalidSession
	}
	if m.isRevoked(parsed.ID) {
		return Session{}, fmt.Errorf("%w: signed out", ErrInvalidSession)
	}
	return Session{
		AdminID:    parsed.Subject,
		Username:   parsed.Username,
		ExpiresAt:  parsed.ExpiresAt.Time.UTC(),
		tokenID:    parsed.ID,
		credential: parsed.Credential,
	}, nil
}

// Revoke rejects session's token from now on.
func (m *Manager) Revoke(session Session) {
	if session.tokenID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, expires := range m.revoked {
		if !expires.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[session.tokenID] = session.ExpiresAt
}

func (m *Manager) isRevoked(tokenID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok
}

// UserLookup loads admins by username.
type UserLookup interface {
	GetAdminUserByUsername(ctx context.Context, username string) (storage.AdminUser, error)
}

// CheckAccount confirms session still belongs to a stored admin whose
// password has not changed since the token was issued.
func CheckAccount(ctx context.Context, users UserLookup, session Session) error {
	if users == nil {
		return fmt.Errorf("admin store is not configured")
	}
	user, err := users.GetAdminUserByUsername(ctx, session.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: admin removed", ErrInvalidSession)
		}
		return fmt.Errorf("load admin: %w", err)
	}
	if user.ID != session.AdminID || credentialFingerprint(user.PasswordHash) != session.credential {
		return fmt.Errorf("%w: credentials changed", ErrInvalidSession)
	}
	return nil
}

type sessionKey struct{}

// WithSession stores session in ctx.
func WithSession(ctx context.Context, session Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	session, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || !session.Valid() {
		return Session{}, false
	}
	return session, true
}
