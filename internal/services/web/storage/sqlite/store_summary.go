package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/festival/internal/services/web/storage"
)

// Summary computes dashboard aggregates.
func (s *Store) Summary(ctx context.Context) (storage.Summary, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Summary{}, err
	}

	summary := storage.Summary{TicketsByTier: map[string]int{}}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(attendees), 0) FROM registrations
`).Scan(&summary.Registrations, &summary.Attendees); err != nil {
		return storage.Summary{}, fmt.Errorf("summarize registrations: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(price_cents), 0), COUNT(checked_in_at) FROM tickets
`).Scan(&summary.TicketsSold, &summary.TicketRevenueCents, &summary.TicketsCheckedIn); err != nil {
		return storage.Summary{}, fmt.Errorf("summarize tickets: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(amount_cents), 0) FROM donations
`).Scan(&summary.Donations, &summary.DonationCents); err != nil {
		return storage.Summary{}, fmt.Errorf("summarize donations: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT tier, COUNT(*) FROM tickets GROUP BY tier ORDER BY tier`)
	if err != nil {
		return storage.Summary{}, fmt.Errorf("summarize ticket tiers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			tier  string
			count int
		)
		if err := rows.Scan(&tier, &count); err != nil {
			return storage.Summary{}, fmt.Errorf("scan ticket tier: %w", err)
		}
		summary.TicketsByTier[tier] = count
	}
	if err := rows.Err(); err != nil {
		return storage.Summary{}, fmt.Errorf("summarize ticket tiers: %w", err)
	}
	return summary, nil
}
