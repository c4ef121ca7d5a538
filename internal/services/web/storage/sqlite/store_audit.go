package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/storage"
)

// AppendAudit records one audit entry.
func (s *Store) AppendAudit(ctx context.Context, entry storage.AuditEntry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Actor) == "" {
		return fmt.Errorf("audit actor is required")
	}
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("audit action is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO audit_log (actor, action, subject, detail, created_at)
VALUES (?, ?, ?, ?, ?)
`,
		strings.TrimSpace(entry.Actor),
		strings.TrimSpace(entry.Action),
		strings.TrimSpace(entry.Subject),
		strings.TrimSpace(entry.Detail),
		toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// ListAudit returns the newest entries first.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]storage.AuditEntry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, actor, action, subject, detail, created_at
FROM audit_log
ORDER BY id DESC
LIMIT ?
`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var entries []storage.AuditEntry
	for rows.Next() {
		var (
			entry     storage.AuditEntry
			createdAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.Actor, &entry.Action, &entry.Subject, &entry.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}
