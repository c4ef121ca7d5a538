package admin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/festival/internal/services/web/storage"
)

// Program times are stored as festival wall-clock times in UTC.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.July, day, hour, minute, 0, 0, time.UTC)
}

var demoPerformers = []storage.Performer{
	{ID: "the-tide", Name: "The Tide", Genre: "Indie rock", Bio: "Five-piece from the east end, closing Friday night.", Headliner: true},
	{ID: "marisol-vega", Name: "Marisol Vega", Genre: "Latin jazz", Bio: "Trumpet-led sextet with a new record out this spring.", Headliner: true},
	{ID: "northern-static", Name: "Northern Static", Genre: "Electronic", Bio: "Modular synth duo."},
	{ID: "paper-lanterns", Name: "Paper Lanterns", Genre: "Folk", Bio: "Harmony trio from the valley."},
	{ID: "harbour-youth-choir", Name: "Harbour Youth Choir", Genre: "Choral", Bio: "Sixty voices aged nine to seventeen."},
	{ID: "the-long-grass", Name: "The Long Grass", Genre: "Bluegrass", Bio: "Banjo, fiddle and a very tall bassist."},
}

var demoEvents = []storage.Event{
	{ID: "fri-choir", Title: "Opening chorus", Stage: "Lakeside Stage", PerformerID: "harbour-youth-choir", StartsAt: at(17, 17, 0), EndsAt: at(17, 17, 45)},
	{ID: "fri-static", Title: "Northern Static live", Stage: "Pavilion", PerformerID: "northern-static", StartsAt: at(17, 19, 0), EndsAt: at(17, 20, 15)},
	{ID: "fri-tide", Title: "The Tide", Stage: "Lakeside Stage", PerformerID: "the-tide", StartsAt: at(17, 21, 0), EndsAt: at(17, 22, 30)},
	{ID: "sat-workshop", Title: "Songwriting workshop", Stage: "Tent B", Description: "Bring an instrument or just your ideas.", StartsAt: at(18, 11, 0), EndsAt: at(18, 12, 30)},
	{ID: "sat-lanterns", Title: "Paper Lanterns", Stage: "Pavilion", PerformerID: "paper-lanterns", StartsAt: at(18, 15, 0), EndsAt: at(18, 16, 0)},
	{ID: "sat-vega", Title: "Marisol Vega", Stage: "Lakeside Stage", PerformerID: "marisol-vega", StartsAt: at(18, 20, 30), EndsAt: at(18, 22, 0)},
	{ID: "sun-long-grass", Title: "Sunday picnic set", Stage: "Lakeside Stage", PerformerID: "the-long-grass", StartsAt: at(19, 13, 0), EndsAt: at(19, 14, 30)},
	{ID: "sun-closing", Title: "Closing lantern walk", Stage: "Harbour promenade", Description: "Meet at the main gate at dusk.", StartsAt: at(19, 20, 30), EndsAt: at(19, 21, 30)},
}

// seed upserts the demo program. Records use fixed ids so repeated runs
// leave one copy of each.
func seed(ctx context.Context, store storage.Store, stdout io.Writer) error {
	for _, performer := range demoPerformers {
		if err := store.PutPerformer(ctx, performer); err != nil {
			return fmt.Errorf("seed performer %s: %w", performer.ID, err)
		}
	}
	for _, event := range demoEvents {
		if err := store.PutEvent(ctx, event); err != nil {
			return fmt.Errorf("seed event %s: %w", event.ID, err)
		}
	}
	if err := store.AppendAudit(ctx, storage.AuditEntry{
		Actor:   cliActor,
		Action:  "program.seeded",
		Subject: "demo",
		Detail:  fmt.Sprintf("performers=%d events=%d", len(demoPerformers), len(demoEvents)),
	}); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "seeded %d performers and %d events\n", len(demoPerformers), len(demoEvents))
	return nil
}
