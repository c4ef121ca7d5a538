package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound reports a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists reports a uniqueness conflict.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrAlreadyCheckedIn reports a ticket that was already scanned at the gate.
	ErrAlreadyCheckedIn = errors.New("ticket already checked in")
)

// Event is one scheduled program slot.
type Event struct {
	ID          string
	Title       string
	Stage       string
	Description string
	PerformerID string
	StartsAt    time.Time
	EndsAt      time.Time
}

// Performer is one act on the lineup.
type Performer struct {
	ID        string
	Name      string
	Genre     string
	Bio       string
	Headliner bool
}

// Registration is a free attendee sign-up.
type Registration struct {
	ID        string
	Name      string
	Email     string
	Attendees int
	Notes     string
	CreatedAt time.Time
}

// TicketTier is a purchasable ticket type.
type TicketTier struct {
	Key        string
	Label      string
	PriceCents int64
}

var ticketTiers = []TicketTier{
	{Key: "day", Label: "Day pass", PriceCents: 4500},
	{Key: "weekend", Label: "Weekend pass", PriceCents: 11000},
	{Key: "vip", Label: "VIP weekend", PriceCents: 24000},
}

// TicketTiers returns the tiers on sale, cheapest first.
func TicketTiers() []TicketTier {
	return append([]TicketTier(nil), ticketTiers...)
}

// LookupTicketTier finds a tier by key.
func LookupTicketTier(key string) (TicketTier, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, tier := range ticketTiers {
		if tier.Key == key {
			return tier, true
		}
	}
	return TicketTier{}, false
}

// Ticket is one purchased ticket.
type Ticket struct {
	ID          string
	Code        string
	HolderName  string
	HolderEmail string
	Tier        string
	PriceCents  int64
	CreatedAt   time.Time
	CheckedInAt *time.Time
}

// Donation is one gift to the festival.
type Donation struct {
	ID          string
	DonorName   string
	DonorEmail  string
	AmountCents int64
	Message     string
	Anonymous   bool
	CreatedAt   time.Time
}

// AuditEntry records one state-changing action.
type AuditEntry struct {
	ID        int64
	Actor     string
	Action    string
	Subject   string
	Detail    string
	CreatedAt time.Time
}

// AdminUser is an operator allowed into the admin portal.
type AdminUser struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary aggregates the admin dashboard figures.
type Summary struct {
	Registrations      int
	Attendees          int
	TicketsSold        int
	TicketsCheckedIn   int
	TicketRevenueCents int64
	Donations          int
	DonationCents      int64
	TicketsByTier      map[string]int
}

// ProgramStore reads and writes the festival program.
type ProgramStore interface {
	PutPerformer(ctx context.Context, performer Performer) error
	ListPerformers(ctx context.Context) ([]Performer, error)
	PutEvent(ctx context.Context, event Event) error
	ListEvents(ctx context.Context) ([]Event, error)
}

// RegistrationStore persists attendee registrations.
type RegistrationStore interface {
	PutRegistration(ctx context.Context, registration Registration) error
	ListRegistrations(ctx context.Context, limit int) ([]Registration, error)
}

// TicketStore persists ticket sales and gate check-ins.
type TicketStore interface {
	PutTicket(ctx context.Context, ticket Ticket) error
	GetTicketByCode(ctx context.Context, code string) (Ticket, error)
	ListTickets(ctx context.Context, limit int) ([]Ticket, error)
	CheckInTicket(ctx context.Context, code string, at time.Time) (Ticket, error)
}

// DonationStore persists donations.
type DonationStore interface {
	PutDonation(ctx context.Context, donation Donation) error
	ListDonations(ctx context.Context, limit int) ([]Donation, error)
}

// AuditStore appends and lists audit entries, newest first.
type AuditStore interface {
	AppendAudit(ctx context.Context, entry AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]AuditEntry, error)
}

// AdminUserStore persists admin credentials.
type AdminUserStore interface {
	PutAdminUser(ctx context.Context, user AdminUser) error
	GetAdminUserByUsername(ctx context.Context, username string) (AdminUser, error)
}

// SummaryStore computes dashboard aggregates.
type SummaryStore interface {
	Summary(ctx context.Context) (Summary, error)
}

// Store is the full festival persistence contract.
type Store interface {
	ProgramStore
	RegistrationStore
	TicketStore
	DonationStore
	AuditStore
	AdminUserStore
	SummaryStore
	Close() error
}
