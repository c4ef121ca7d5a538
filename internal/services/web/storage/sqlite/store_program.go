package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/storage"
)

// PutPerformer upserts a lineup act.
func (s *Store) PutPerformer(ctx context.Context, performer storage.Performer) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	performer.ID = strings.TrimSpace(performer.ID)
	performer.Name = strings.TrimSpace(performer.Name)
	if performer.ID == "" {
		return fmt.Errorf("performer id is required")
	}
	if performer.Name == "" {
		return fmt.Errorf("performer name is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO performers (id, name, genre, bio, headliner)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	genre = excluded.genre,
	bio = excluded.bio,
	headliner = excluded.headliner
`,
		performer.ID,
		performer.Name,
		strings.TrimSpace(performer.Genre),
		strings.TrimSpace(performer.Bio),
		boolToInt(performer.Headliner),
	)
	if err != nil {
		return insertErr("put performer", err)
	}
	return nil
}

// ListPerformers returns headliners first, then the rest by name.
func (s *Store) ListPerformers(ctx context.Context) ([]storage.Performer, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, genre, bio, headliner
FROM performers
ORDER BY headliner DESC, name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list performers: %w", err)
	}
	defer rows.Close()

	var performers []storage.Performer
	for rows.Next() {
		var (
			performer storage.Performer
			headliner int
		)
		if err := rows.Scan(&performer.ID, &performer.Name, &performer.Genre, &performer.Bio, &headliner); err != nil {
			return nil, fmt.Errorf("scan performer: %w", err)
		}
		performer.Headliner = headliner != 0
		performers = append(performers, performer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list performers: %w", err)
	}
	return performers, nil
}

// PutEvent upserts a program slot.
func (s *Store) PutEvent(ctx context.Context, event storage.Event) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	event.ID = strings.TrimSpace(event.ID)
	event.Title = strings.TrimSpace(event.Title)
	event.Stage = strings.TrimSpace(event.Stage)
	if event.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if event.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if event.Stage == "" {
		return fmt.Errorf("event stage is required")
	}
	if event.StartsAt.IsZero() || event.EndsAt.IsZero() {
		return fmt.Errorf("event start and end are required")
	}
	if !event.EndsAt.After(event.StartsAt) {
		return fmt.Errorf("event must end after it starts")
	}

	var performerID sql.NullString
	if id := strings.TrimSpace(event.PerformerID); id != "" {
		performerID = sql.NullString{String: id, Valid: true}
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO events (id, title, stage, description, performer_id, starts_at, ends_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	stage = excluded.stage,
	description = excluded.description,
	performer_id = excluded.performer_id,
	starts_at = excluded.starts_at,
	ends_at = excluded.ends_at
`,
		event.ID,
		event.Title,
		event.Stage,
		strings.TrimSpace(event.Description),
		performerID,
		toMillis(event.StartsAt),
		toMillis(event.EndsAt),
	)
	if err != nil {
		return insertErr("put event", err)
	}
	return nil
}

// ListEvents returns the program in start order.
func (s *Store) ListEvents(ctx context.Context) ([]storage.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, stage, description, performer_id, starts_at, ends_at
FROM events
ORDER BY starts_at ASC, stage ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []storage.Event
	for rows.Next() {
		var (
			event       storage.Event
			performerID sql.NullString
			startsAt    int64
			endsAt      int64
		)
		if err := rows.Scan(&event.ID, &event.Title, &event.Stage, &event.Description, &performerID, &startsAt, &endsAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.PerformerID = performerID.String
		event.StartsAt = fromMillis(startsAt)
		event.EndsAt = fromMillis(endsAt)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
