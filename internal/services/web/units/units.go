// Package units holds the festival's mountable page units and the registry
// that maps their names to loaders.
package units

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/mount"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

// Unit names as written in a page's data-component attribute.
const (
	HomePage               = "HomePage"
	AboutPage              = "AboutPage"
	LineupPage             = "LineupPage"
	SchedulePage           = "SchedulePage"
	EventInfoPage          = "EventInfoPage"
	VenuePage              = "VenuePage"
	FAQPage                = "FAQPage"
	RegisterPage           = "RegisterPage"
	TicketsPage            = "TicketsPage"
	DonatePage             = "DonatePage"
	AdminDashboardPage     = "AdminDashboardPage"
	AdminRegistrationsPage = "AdminRegistrationsPage"
	AdminTicketsPage       = "AdminTicketsPage"
	AdminDonationsPage     = "AdminDonationsPage"
	AdminAnalyticsPage     = "AdminAnalyticsPage"
	AdminAuditLogPage      = "AdminAuditLogPage"
	AdminCheckInPage       = "AdminCheckInPage"
	AdminLoginPage         = "AdminLoginPage"
)

// RequiresSession reports whether name is an admin unit that only renders
// for a signed-in admin.
func RequiresSession(name string) bool {
	return strings.HasPrefix(name, "Admin") && name != AdminLoginPage
}

// adminListLimit caps admin tables.
const adminListLimit = 200

// Reader is the read surface the units load from.
type Reader interface {
	ListPerformers(ctx context.Context) ([]storage.Performer, error)
	ListEvents(ctx context.Context) ([]storage.Event, error)
	ListRegistrations(ctx context.Context, limit int) ([]storage.Registration, error)
	ListTickets(ctx context.Context, limit int) ([]storage.Ticket, error)
	ListDonations(ctx context.Context, limit int) ([]storage.Donation, error)
	ListAudit(ctx context.Context, limit int) ([]storage.AuditEntry, error)
	Summary(ctx context.Context) (storage.Summary, error)
}

// Loaders returns one loader per unit, reading from reader.
func Loaders(reader Reader) map[string]mount.Loader {
	return map[string]mount.Loader{
		HomePage:               loadHome(reader),
		AboutPage:              mount.Static(about()),
		LineupPage:             loadLineup(reader),
		SchedulePage:           loadSchedule(reader),
		EventInfoPage:          mount.Static(eventInfo()),
		VenuePage:              mount.Static(venue()),
		FAQPage:                mount.Static(faq()),
		RegisterPage:           loadRegister,
		TicketsPage:            loadTickets,
		DonatePage:             loadDonate,
		AdminDashboardPage:     loadAdminDashboard(reader),
		AdminRegistrationsPage: loadAdminRegistrations(reader),
		AdminTicketsPage:       loadAdminTickets(reader),
		AdminDonationsPage:     loadAdminDonations(reader),
		AdminAnalyticsPage:     loadAdminAnalytics(reader),
		AdminAuditLogPage:      loadAdminAuditLog(reader),
		AdminCheckInPage:       loadAdminCheckIn,
		AdminLoginPage:         loadAdminLogin,
	}
}

// NewRegistry builds the festival unit registry.
func NewRegistry(reader Reader) (*mount.Registry, error) {
	if reader == nil {
		return nil, fmt.Errorf("unit reader is required")
	}
	return mount.NewRegistry(Loaders(reader))
}

type queryKey struct{}

// WithQuery carries the page request's query parameters to unit loaders.
func WithQuery(ctx context.Context, query url.Values) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

func queryValue(ctx context.Context, key string) string {
	query, _ := ctx.Value(queryKey{}).(url.Values)
	return query.Get(key)
}
