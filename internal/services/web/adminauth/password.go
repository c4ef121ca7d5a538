package adminauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/storage"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted admin password.
const MinPasswordLength = 10

// ErrInvalidCredentials hides whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash keeps the failed-lookup path as slow as a real comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("festival-placeholder"), bcrypt.MinCost)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares password with hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("check password: %w", err)
	}
	return nil
}

// Authenticator verifies admin credentials against the store.
type Authenticator struct {
	users storage.AdminUserStore
}

// NewAuthenticator builds an authenticator over users.
func NewAuthenticator(users storage.AdminUserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate returns the admin for username when password matches.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (storage.AdminUser, error) {
	if a == nil || a.users == nil {
		return storage.AdminUser{}, fmt.Errorf("admin store is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return storage.AdminUser{}, ErrInvalidCredentials
	}
	user, err := a.users.GetAdminUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return storage.AdminUser{}, ErrInvalidCredentials
		}
		return storage.AdminUser{}, fmt.Errorf("load admin: %w", err)
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return storage.AdminUser{}, err
	}
	return user, nil
}
