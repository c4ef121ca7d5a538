package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/storage"
)

// PutAdminUser creates or replaces an admin by username.
func (s *Store) PutAdminUser(ctx context.Context, user storage.AdminUser) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	user.ID = strings.TrimSpace(user.ID)
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.ID == "" || user.Username == "" {
		return fmt.Errorf("admin id and username are required")
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("admin password hash is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO admin_users (id, username, password_hash, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash
`,
		user.ID,
		user.Username,
		user.PasswordHash,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		return insertErr("put admin user", err)
	}
	return nil
}

// GetAdminUserByUsername loads an admin by username.
func (s *Store) GetAdminUserByUsername(ctx context.Context, username string) (storage.AdminUser, error) {
	if err := s.ready(ctx); err != nil {
		return storage.AdminUser{}, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return storage.AdminUser{}, storage.ErrNotFound
	}

	var (
		user      storage.AdminUser
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM admin_users
WHERE username = ?
`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.AdminUser{}, storage.ErrNotFound
		}
		return storage.AdminUser{}, fmt.Errorf("get admin user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}
