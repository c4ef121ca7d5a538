package mount

import (
	"context"
	"testing"
)

func TestNewRegistryRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	ok := Static(text("ok"))
	tests := []struct {
		name    string
		loaders map[string]Loader
	}{
		{name: "empty name", loaders: map[string]Loader{"": ok}},
		{name: "padded name", loaders: map[string]Loader{" AboutPage": ok}},
		{name: "nil loader", loaders: map[string]Loader{"AboutPage": nil}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewRegistry(tc.loaders); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRegistryIsDetachedFromSource(t *testing.T) {
	t.Parallel()

	source := map[string]Loader{"HomePage": Static(text("home"))}
	registry := newTestRegistry(t, source)
	source["AboutPage"] = Static(text("about"))
	delete(source, "HomePage")

	if _, ok := registry.Lookup("HomePage"); !ok {
		t.Fatal("HomePage missing after source map changed")
	}
	if _, ok := registry.Lookup("AboutPage"); ok {
		t.Fatal("AboutPage leaked into registry")
	}
	if got := registry.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

func TestRegistryLookupIsCaseSensitive(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(t, map[string]Loader{"AboutPage": Static(text("about"))})
	if _, ok := registry.Lookup("aboutpage"); ok {
		t.Fatal("lookup matched a differently cased name")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(t, map[string]Loader{
		"TicketsPage": Static(text("t")),
		"AboutPage":   Static(text("a")),
		"HomePage":    Static(text("h")),
	})
	got := registry.Names()
	want := []string{"AboutPage", "HomePage", "TicketsPage"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestNilRegistry(t *testing.T) {
	t.Parallel()

	var registry *Registry
	if _, ok := registry.Lookup("HomePage"); ok {
		t.Fatal("nil registry returned a loader")
	}
	if registry.Len() != 0 || registry.Names() != nil {
		t.Fatal("nil registry should be empty")
	}
}

func TestStaticLoaderReturnsComponent(t *testing.T) {
	t.Parallel()

	component := text("x")
	got, err := Static(component)(context.Background())
	if err != nil {
		t.Fatalf("Static() error = %v", err)
	}
	if got == nil {
		t.Fatal("Static() returned nil component")
	}
}
