package units

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

// Suggested donation amounts in cents.
var donationPresets = []int64{1000, 2500, 5000, 10000}

func field(m *markup, label, name, kind string, required bool) {
	m.raw("<label>")
	m.text(label)
	m.raw("<input")
	m.attr("type", kind)
	m.attr("name", name)
	if required {
		m.raw(" required")
	}
	m.raw("></label>")
}

func loadRegister(context.Context) (templ.Component, error) {
	return component(RegisterPage, func(_ context.Context, m *markup) {
		m.elem("h1", "Register")
		m.elem("p", "Daytime events are free. Register so we can plan capacity.")
		m.raw(`<form method="post" action="/register" class="form">`)
		field(m, "Name", "name", "text", true)
		field(m, "Email", "email", "email", true)
		m.raw(`<label>Attendees<input type="number" name="attendees" min="1" max="10" value="1" required></label>`)
		m.raw(`<label>Notes<textarea name="notes" rows="3"></textarea></label>`)
		m.raw(`<button type="submit">Register</button></form>`)
	}), nil
}

func loadTickets(ctx context.Context) (templ.Component, error) {
	code := queryValue(ctx, "code")
	return component(TicketsPage, func(_ context.Context, m *markup) {
		m.elem("h1", "Tickets")
		if code != "" {
			m.raw(`<p class="ticket-code">Your ticket code: `)
			m.elem("strong", code)
			m.raw(`</p>`)
		}
		m.raw(`<form method="post" action="/tickets" class="form">`)
		m.raw(`<fieldset><legend>Ticket type</legend>`)
		for i, tier := range storage.TicketTiers() {
			m.raw(`<label><input type="radio" name="tier"`)
			m.attr("value", tier.Key)
			if i == 0 {
				m.raw(" checked")
			}
			m.raw(">")
			m.text(tier.Label + " · " + money(tier.PriceCents))
			m.raw("</label>")
		}
		m.raw(`</fieldset>`)
		field(m, "Name on ticket", "name", "text", true)
		field(m, "Email", "email", "email", true)
		m.raw(`<button type="submit">Buy ticket</button></form>`)
	}), nil
}

func loadDonate(context.Context) (templ.Component, error) {
	return component(DonatePage, func(_ context.Context, m *markup) {
		m.elem("h1", "Donate")
		m.elem("p", "Donations keep daytime events free for everyone.")
		m.raw(`<form method="post" action="/donate" class="form">`)
		m.raw(`<fieldset><legend>Amount</legend>`)
		for _, cents := range donationPresets {
			m.raw(`<label><input type="radio" name="amount"`)
			m.attr("value", strconv.FormatInt(cents/100, 10))
			m.raw(">")
			m.text(money(cents))
			m.raw("</label>")
		}
		m.raw(`<label>Other<input type="number" name="custom_amount" min="1" step="1"></label></fieldset>`)
		field(m, "Name", "name", "text", false)
		field(m, "Email", "email", "email", true)
		m.raw(`<label>Message<textarea name="message" rows="3"></textarea></label>`)
		m.raw(`<label><input type="checkbox" name="anonymous" value="1"> Keep my gift anonymous</label>`)
		m.raw(`<button type="submit">Donate</button></form>`)
	}), nil
}
