package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/festival/internal/services/web/storage"
)

// PutRegistration stores a new registration. A second registration for the
// same email returns storage.ErrAlreadyExists.
func (s *Store) PutRegistration(ctx context.Context, registration storage.Registration) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	registration.ID = strings.TrimSpace(registration.ID)
	registration.Name = strings.TrimSpace(registration.Name)
	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))
	if registration.ID == "" {
		return fmt.Errorf("registration id is required")
	}
	if registration.Name == "" || registration.Email == "" {
		return fmt.Errorf("registration name and email are required")
	}
	if registration.Attendees <= 0 {
		return fmt.Errorf("registration must include at least one attendee")
	}
	if registration.CreatedAt.IsZero() {
		registration.CreatedAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO registrations (id, name, email, attendees, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`,
		registration.ID,
		registration.Name,
		registration.Email,
		registration.Attendees,
		strings.TrimSpace(registration.Notes),
		toMillis(registration.CreatedAt),
	)
	if err != nil {
		return insertErr("put registration", err)
	}
	return nil
}

// ListRegistrations returns the newest registrations first.
func (s *Store) ListRegistrations(ctx context.Context, limit int) ([]storage.Registration, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, email, attendees, notes, created_at
FROM registrations
ORDER BY created_at DESC, id ASC
LIMIT ?
`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var registrations []storage.Registration
	for rows.Next() {
		var (
			registration storage.Registration
			createdAt    int64
		)
		if err := rows.Scan(&registration.ID, &registration.Name, &registration.Email, &registration.Attendees, &registration.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		registration.CreatedAt = fromMillis(createdAt)
		registrations = append(registrations, registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// PutTicket stores a sold ticket.
func (s *Store) PutTicket(ctx context.Context, ticket storage.Ticket) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	ticket.ID = strings.TrimSpace(ticket.ID)
	ticket.Code = strings.ToUpper(strings.TrimSpace(ticket.Code))
	ticket.HolderName = strings.TrimSpace(ticket.HolderName)
	ticket.HolderEmail = strings.ToLower(strings.TrimSpace(ticket.HolderEmail))
	if ticket.ID == "" || ticket.Code == "" {
		return fmt.Errorf("ticket id and code are required")
	}
	if ticket.HolderName == "" || ticket.HolderEmail == "" {
		return fmt.Errorf("ticket holder name and email are required")
	}
	if _, ok := storage.LookupTicketTier(ticket.Tier); !ok {
		return fmt.Errorf("ticket tier %q is not on sale", ticket.Tier)
	}
	if ticket.PriceCents < 0 {
		return fmt.Errorf("ticket price must not be negative")
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO tickets (id, code, holder_name, holder_email, tier, price_cents, created_at, checked_in_at)
VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
`,
		ticket.ID,
		ticket.Code,
		ticket.HolderName,
		ticket.HolderEmail,
		strings.ToLower(strings.TrimSpace(ticket.Tier)),
		ticket.PriceCents,
		toMillis(ticket.CreatedAt),
	)
	if err != nil {
		return insertErr("put ticket", err)
	}
	return nil
}

const ticketColumns = `id, code, holder_name, holder_email, tier, price_cents, created_at, checked_in_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (storage.Ticket, error) {
	var (
		ticket      storage.Ticket
		createdAt   int64
		checkedInAt sql.NullInt64
	)
	if err := row.Scan(&ticket.ID, &ticket.Code, &ticket.HolderName, &ticket.HolderEmail, &ticket.Tier, &ticket.PriceCents, &createdAt, &checkedInAt); err != nil {
		return storage.Ticket{}, err
	}
	ticket.CreatedAt = fromMillis(createdAt)
	if checkedInAt.Valid {
		value := fromMillis(checkedInAt.Int64)
		ticket.CheckedInAt = &value
	}
	return ticket, nil
}

// GetTicketByCode loads a ticket by its gate code.
func (s *Store) GetTicketByCode(ctx context.Context, code string) (storage.Ticket, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Ticket{}, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return storage.Ticket{}, fmt.Errorf("ticket code is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE code = ?`, code)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Ticket{}, storage.ErrNotFound
		}
		return storage.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

// ListTickets returns the newest tickets first.
func (s *Store) ListTickets(ctx context.Context, limit int) ([]storage.Ticket, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC, id ASC LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []storage.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// CheckInTicket marks a ticket as scanned at the gate. A ticket can be
// checked in once; repeats return storage.ErrAlreadyCheckedIn together with
// the stored ticket.
func (s *Store) CheckInTicket(ctx context.Context, code string, at time.Time) (storage.Ticket, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Ticket{}, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return storage.Ticket{}, fmt.Errorf("ticket code is required")
	}
	if at.IsZero() {
		at = s.now()
	}

	result, err := s.sqlDB.ExecContext(ctx, `UPDATE tickets SET checked_in_at = ? WHERE code = ? AND checked_in_at IS NULL`, toMillis(at), code)
	if err != nil {
		return storage.Ticket{}, fmt.Errorf("check in ticket: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.Ticket{}, fmt.Errorf("check in ticket: %w", err)
	}
	ticket, err := s.GetTicketByCode(ctx, code)
	if err != nil {
		return storage.Ticket{}, err
	}
	if affected == 0 {
		return ticket, storage.ErrAlreadyCheckedIn
	}
	return ticket, nil
}

// PutDonation stores a donation.
func (s *Store) PutDonation(ctx context.Context, donation storage.Donation) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	donation.ID = strings.TrimSpace(donation.ID)
	donation.DonorName = strings.TrimSpace(donation.DonorName)
	donation.DonorEmail = strings.ToLower(strings.TrimSpace(donation.DonorEmail))
	if donation.ID == "" {
		return fmt.Errorf("donation id is required")
	}
	if donation.DonorEmail == "" {
		return fmt.Errorf("donor email is required")
	}
	if donation.AmountCents <= 0 {
		return fmt.Errorf("donation amount must be positive")
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO donations (id, donor_name, donor_email, amount_cents, message, anonymous, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		donation.ID,
		donation.DonorName,
		donation.DonorEmail,
		donation.AmountCents,
		strings.TrimSpace(donation.Message),
		boolToInt(donation.Anonymous),
		toMillis(donation.CreatedAt),
	)
	if err != nil {
		return insertErr("put donation", err)
	}
	return nil
}

// ListDonations returns the newest donations first.
func (s *Store) ListDonations(ctx context.Context, limit int) ([]storage.Donation, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, donor_name, donor_email, amount_cents, message, anonymous, created_at
FROM donations
ORDER BY created_at DESC, id ASC
LIMIT ?
`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var donations []storage.Donation
	for rows.Next() {
		var (
			donation  storage.Donation
			anonymous int
			createdAt int64
		)
		if err := rows.Scan(&donation.ID, &donation.DonorName, &donation.DonorEmail, &donation.AmountCents, &donation.Message, &anonymous, &createdAt); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		donation.Anonymous = anonymous != 0
		donation.CreatedAt = fromMillis(createdAt)
		donations = append(donations, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}
