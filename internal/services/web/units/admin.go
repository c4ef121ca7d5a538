package units

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/mount"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

var adminNav = []struct{ href, label string }{
	{"/admin", "Dashboard"},
	{"/admin/registrations", "Registrations"},
	{"/admin/tickets", "Tickets"},
	{"/admin/donations", "Donations"},
	{"/admin/analytics", "Analytics"},
	{"/admin/audit", "Audit log"},
	{"/admin/check-in", "Check-in"},
}

// adminComponent adds the portal navigation and the signed-in admin, read
// from the session the auth provider puts in the render context.
func adminComponent(unit, title string, body func(ctx context.Context, m *markup)) templ.Component {
	return component(unit, func(ctx context.Context, m *markup) {
		m.raw(`<nav class="admin-nav"><ul>`)
		for _, item := range adminNav {
			m.raw(`<li><a`)
			m.attr("href", item.href)
			m.raw(">")
			m.text(item.label)
			m.raw(`</a></li>`)
		}
		m.raw(`</ul>`)
		if session, ok := adminauth.SessionFromContext(ctx); ok {
			m.raw(`<form method="post" action="/admin/logout" class="signout"><span>Signed in as `)
			m.text(session.Username)
			m.raw(`</span> <button type="submit">Sign out</button></form>`)
		}
		m.raw(`</nav>`)
		m.elem("h1", title)
		body(ctx, m)
	})
}

func stat(m *markup, label, value string) {
	m.raw(`<div class="stat"><dt>`)
	m.text(label)
	m.raw(`</dt><dd>`)
	m.text(value)
	m.raw(`</dd></div>`)
}

func loadAdminDashboard(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		summary, err := reader.Summary(ctx)
		if err != nil {
			return nil, fmt.Errorf("load summary: %w", err)
		}
		recent, err := reader.ListAudit(ctx, 5)
		if err != nil {
			return nil, fmt.Errorf("list audit: %w", err)
		}
		return adminComponent(AdminDashboardPage, "Dashboard", func(_ context.Context, m *markup) {
			m.raw(`<dl class="stats">`)
			stat(m, "Registrations", count(summary.Registrations))
			stat(m, "Attendees", count(summary.Attendees))
			stat(m, "Tickets sold", count(summary.TicketsSold))
			stat(m, "Checked in", count(summary.TicketsCheckedIn))
			stat(m, "Ticket revenue", money(summary.TicketRevenueCents))
			stat(m, "Donations", money(summary.DonationCents))
			m.raw(`</dl>`)
			m.elem("h2", "Recent activity")
			auditTable(m, recent)
		}), nil
	}
}

func loadAdminRegistrations(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		registrations, err := reader.ListRegistrations(ctx, adminListLimit)
		if err != nil {
			return nil, fmt.Errorf("list registrations: %w", err)
		}
		return adminComponent(AdminRegistrationsPage, "Registrations", func(_ context.Context, m *markup) {
			if len(registrations) == 0 {
				m.elem("p", "No registrations yet.")
				return
			}
			m.raw(`<table><thead><tr><th>Name</th><th>Email</th><th>Attendees</th><th>Notes</th><th>Registered</th></tr></thead><tbody>`)
			for _, r := range registrations {
				m.raw("<tr>")
				m.elem("td", r.Name)
				m.elem("td", r.Email)
				m.elem("td", strconv.Itoa(r.Attendees))
				m.elem("td", r.Notes)
				m.elem("td", stamp(r.CreatedAt))
				m.raw("</tr>")
			}
			m.raw(`</tbody></table>`)
		}), nil
	}
}

func loadAdminTickets(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		tickets, err := reader.ListTickets(ctx, adminListLimit)
		if err != nil {
			return nil, fmt.Errorf("list tickets: %w", err)
		}
		return adminComponent(AdminTicketsPage, "Tickets", func(_ context.Context, m *markup) {
			if len(tickets) == 0 {
				m.elem("p", "No tickets sold yet.")
				return
			}
			m.raw(`<table><thead><tr><th>Code</th><th>Holder</th><th>Tier</th><th>Price</th><th>Sold</th><th>Checked in</th></tr></thead><tbody>`)
			for _, ticket := range tickets {
				checkedIn := "-"
				if ticket.CheckedInAt != nil {
					checkedIn = stamp(*ticket.CheckedInAt)
				}
				tier := ticket.Tier
				if known, ok := storage.LookupTicketTier(ticket.Tier); ok {
					tier = known.Label
				}
				m.raw("<tr>")
				m.raw("<td><code>")
				m.text(ticket.Code)
				m.raw("</code></td>")
				m.elem("td", ticket.HolderName+" <"+ticket.HolderEmail+">")
				m.elem("td", tier)
				m.elem("td", money(ticket.PriceCents))
				m.elem("td", stamp(ticket.CreatedAt))
				m.elem("td", checkedIn)
				m.raw("</tr>")
			}
			m.raw(`</tbody></table>`)
		}), nil
	}
}

func loadAdminDonations(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		donations, err := reader.ListDonations(ctx, adminListLimit)
		if err != nil {
			return nil, fmt.Errorf("list donations: %w", err)
		}
		return adminComponent(AdminDonationsPage, "Donations", func(_ context.Context, m *markup) {
			if len(donations) == 0 {
				m.elem("p", "No donations yet.")
				return
			}
			m.raw(`<table><thead><tr><th>Donor</th><th>Amount</th><th>Message</th><th>Received</th></tr></thead><tbody>`)
			for _, donation := range donations {
				donor := donation.DonorName
				if donor == "" {
					donor = donation.DonorEmail
				}
				if donation.Anonymous {
					donor += " (anonymous)"
				}
				m.raw("<tr>")
				m.elem("td", donor)
				m.elem("td", money(donation.AmountCents))
				m.elem("td", donation.Message)
				m.elem("td", stamp(donation.CreatedAt))
				m.raw("</tr>")
			}
			m.raw(`</tbody></table>`)
		}), nil
	}
}

func loadAdminAnalytics(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		summary, err := reader.Summary(ctx)
		if err != nil {
			return nil, fmt.Errorf("load summary: %w", err)
		}
		return adminComponent(AdminAnalyticsPage, "Analytics", func(_ context.Context, m *markup) {
			m.raw(`<dl class="stats">`)
			stat(m, "Check-in rate", percent(summary.TicketsCheckedIn, summary.TicketsSold))
			average := int64(0)
			if summary.Donations > 0 {
				average = summary.DonationCents / int64(summary.Donations)
			}
			stat(m, "Average donation", money(average))
			stat(m, "Total raised", money(summary.TicketRevenueCents+summary.DonationCents))
			m.raw(`</dl>`)

			m.elem("h2", "Tickets by tier")
			tiers := make([]string, 0, len(summary.TicketsByTier))
			for tier := range summary.TicketsByTier {
				tiers = append(tiers, tier)
			}
			sort.Strings(tiers)
			m.raw(`<table><thead><tr><th>Tier</th><th>Sold</th><th>Share</th></tr></thead><tbody>`)
			for _, key := range tiers {
				label := key
				if tier, ok := storage.LookupTicketTier(key); ok {
					label = tier.Label
				}
				sold := summary.TicketsByTier[key]
				m.raw("<tr>")
				m.elem("td", label)
				m.elem("td", count(sold))
				m.elem("td", percent(sold, summary.TicketsSold))
				m.raw("</tr>")
			}
			m.raw(`</tbody></table>`)
		}), nil
	}
}

func auditTable(m *markup, entries []storage.AuditEntry) {
	if len(entries) == 0 {
		m.elem("p", "Nothing recorded yet.")
		return
	}
	m.raw(`<table class="audit"><thead><tr><th>When</th><th>Actor</th><th>Action</th><th>Subject</th><th>Detail</th></tr></thead><tbody>`)
	for _, entry := range entries {
		m.raw("<tr>")
		m.elem("td", stamp(entry.CreatedAt))
		m.elem("td", entry.Actor)
		m.elem("td", entry.Action)
		m.elem("td", entry.Subject)
		m.elem("td", entry.Detail)
		m.raw("</tr>")
	}
	m.raw(`</tbody></table>`)
}

func loadAdminAuditLog(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		entries, err := reader.ListAudit(ctx, adminListLimit)
		if err != nil {
			return nil, fmt.Errorf("list audit: %w", err)
		}
		return adminComponent(AdminAuditLogPage, "Audit log", func(_ context.Context, m *markup) {
			auditTable(m, entries)
		}), nil
	}
}

func loadAdminCheckIn(context.Context) (templ.Component, error) {
	return adminComponent(AdminCheckInPage, "Gate check-in", func(_ context.Context, m *markup) {
		m.raw(`<form method="post" action="/admin/check-in" class="form" hx-post="/admin/check-in">`)
		m.raw(`<label>Ticket code<input type="text" name="code" autocomplete="off" autofocus required pattern="[A-Za-z0-9]{4}-[A-Za-z0-9]{4}"></label>`)
		m.raw(`<button type="submit">Check in</button></form>`)
	}), nil
}

func loadAdminLogin(ctx context.Context) (templ.Component, error) {
	next := queryValue(ctx, "next")
	return component(AdminLoginPage, func(_ context.Context, m *markup) {
		m.elem("h1", "Admin sign in")
		m.raw(`<form method="post" action="/admin/login" class="form">`)
		m.raw(`<input type="hidden" name="next"`)
		m.attr("value", adminauth.SafeNext(next))
		m.raw(`>`)
		field(m, "Username", "username", "text", true)
		field(m, "Password", "password", "password", true)
		m.raw(`<button type="submit">Sign in</button></form>`)
	}), nil
}
