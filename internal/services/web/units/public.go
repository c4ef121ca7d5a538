package units

import (
	"context"
	"fmt"
	"sort"

	"github.com/a-h/templ"
	"github.com/louisbranch/festival/internal/platform/branding"
	"github.com/louisbranch/festival/internal/services/web/mount"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

func loadHome(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		performers, err := reader.ListPerformers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list performers: %w", err)
		}
		var headliners []storage.Performer
		for _, performer := range performers {
			if performer.Headliner {
				headliners = append(headliners, performer)
			}
		}
		return home(headliners), nil
	}
}

func home(headliners []storage.Performer) templ.Component {
	return component(HomePage, func(_ context.Context, m *markup) {
		m.raw(`<header class="hero">`)
		m.elem("h1", branding.AppName)
		m.elem("p", branding.Dates+" · "+branding.Location)
		m.raw(`<a class="button" href="/tickets">Get tickets</a> <a class="button secondary" href="/register">Register for free events</a>`)
		m.raw(`</header>`)
		if len(headliners) == 0 {
			m.elem("p", "The lineup will be announced soon.")
			return
		}
		m.elem("h2", "Headliners")
		m.raw(`<ul class="headliners">`)
		for _, performer := range headliners {
			m.raw("<li>")
			m.elem("strong", performer.Name)
			if performer.Genre != "" {
				m.raw(" ")
				m.elem("span", performer.Genre)
			}
			m.raw("</li>")
		}
		m.raw(`</ul><p><a href="/lineup">See the full lineup</a></p>`)
	})
}

func about() templ.Component {
	return component(AboutPage, func(_ context.Context, m *markup) {
		m.elem("h1", "About the festival")
		m.elem("p", branding.AppName+" is a volunteer-run weekend of music, theatre and visual art on the shore of the lake.")
		m.elem("p", "Since the first edition the festival has kept most events free, funded by ticketed evening shows and donations from the community.")
		m.raw(`<p><a href="/donate">Support the festival</a></p>`)
	})
}

func loadLineup(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		performers, err := reader.ListPerformers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list performers: %w", err)
		}
		return lineup(performers), nil
	}
}

func lineup(performers []storage.Performer) templ.Component {
	return component(LineupPage, func(_ context.Context, m *markup) {
		m.elem("h1", "Lineup")
		if len(performers) == 0 {
			m.elem("p", "The lineup will be announced soon.")
			return
		}
		m.raw(`<ul class="lineup">`)
		for _, performer := range performers {
			m.raw("<li")
			if performer.Headliner {
				m.attr("class", "headliner")
			}
			m.raw(">")
			m.elem("h3", performer.Name)
			if performer.Genre != "" {
				m.raw(`<p class="genre">`)
				m.text(performer.Genre)
				m.raw(`</p>`)
			}
			if performer.Bio != "" {
				m.elem("p", performer.Bio)
			}
			m.raw("</li>")
		}
		m.raw("</ul>")
	})
}

func loadSchedule(reader Reader) mount.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		events, err := reader.ListEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		performers, err := reader.ListPerformers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list performers: %w", err)
		}
		names := make(map[string]string, len(performers))
		for _, performer := range performers {
			names[performer.ID] = performer.Name
		}
		return schedule(events, names), nil
	}
}

func schedule(events []storage.Event, performerNames map[string]string) templ.Component {
	return component(SchedulePage, func(_ context.Context, m *markup) {
		m.elem("h1", "Schedule")
		if len(events) == 0 {
			m.elem("p", "The schedule will be published soon.")
			return
		}
		sorted := append([]storage.Event(nil), events...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartsAt.Before(sorted[j].StartsAt) })

		currentDay := ""
		for _, event := range sorted {
			if d := day(event.StartsAt); d != currentDay {
				if currentDay != "" {
					m.raw("</ol>")
				}
				currentDay = d
				m.elem("h2", d)
				m.raw(`<ol class="schedule">`)
			}
			m.raw("<li>")
			m.raw(`<span class="time">`)
			m.text(clock(event.StartsAt) + " - " + clock(event.EndsAt))
			m.raw(`</span> `)
			m.elem("strong", event.Title)
			m.raw(` <span class="stage">`)
			m.text(event.Stage)
			m.raw(`</span>`)
			if name := performerNames[event.PerformerID]; name != "" {
				m.raw(` <span class="performer">`)
				m.text(name)
				m.raw(`</span>`)
			}
			if event.Description != "" {
				m.elem("p", event.Description)
			}
			m.raw("</li>")
		}
		m.raw("</ol>")
	})
}

func eventInfo() templ.Component {
	return component(EventInfoPage, func(_ context.Context, m *markup) {
		m.elem("h1", "Event information")
		m.raw("<dl>")
		m.elem("dt", "Dates")
		m.elem("dd", branding.Dates)
		m.elem("dt", "Gates")
		m.elem("dd", "Gates open at 11:00 AM and close at 11:30 PM each day.")
		m.elem("dt", "Accessibility")
		m.elem("dd", "All stages have step-free access and a viewing platform.")
		m.raw("</dl>")
		m.elem("h2", "Tickets")
		m.raw(`<ul class="tiers">`)
		for _, tier := range storage.TicketTiers() {
			m.raw("<li>")
			m.text(tier.Label + " · " + money(tier.PriceCents))
			m.raw("</li>")
		}
		m.raw("</ul>")
	})
}

func venue() templ.Component {
	return component(VenuePage, func(_ context.Context, m *markup) {
		m.elem("h1", "Venue")
		m.elem("p", branding.Location)
		m.elem("h2", "Getting there")
		m.raw("<ul>")
		m.elem("li", "Shuttle buses run from the central station every 15 minutes.")
		m.elem("li", "Bike parking is free at the north gate.")
		m.elem("li", "There is no public parking on site.")
		m.raw("</ul>")
	})
}

var faqEntries = []struct{ question, answer string }{
	{"Are children welcome?", "Yes. Under 12s enter free with a ticketed adult."},
	{"Can I bring food?", "Picnics are welcome on the lawns. Glass is not allowed."},
	{"Is re-entry allowed?", "Yes, keep your wristband on."},
	{"What if it rains?", "Events go ahead; covered stages are marked on the map."},
}

func faq() templ.Component {
	return component(FAQPage, func(_ context.Context, m *markup) {
		m.elem("h1", "Frequently asked questions")
		for _, entry := range faqEntries {
			m.raw("<details>")
			m.elem("summary", entry.question)
			m.elem("p", entry.answer)
			m.raw("</details>")
		}
	})
}
