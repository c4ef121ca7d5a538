package mount

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/a-h/templ"
)

func TestStrictDisabledReturnsChild(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	var renders int
	child := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		renders++
		_, err := io.WriteString(w, "ok")
		return err
	})
	var buf bytes.Buffer
	if err := Strict("HomePage", child, false, reporter).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if renders != 1 {
		t.Fatalf("renders = %d, want 1", renders)
	}
	if len(reporter.all()) != 0 {
		t.Fatalf("diagnostics = %v, want none", reporter.all())
	}
}

func TestStrictStableRenderIsQuiet(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	var buf bytes.Buffer
	if err := Strict("HomePage", text("<p>home</p>"), true, reporter).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != "<p>home</p>" {
		t.Fatalf("output = %q, want single render", buf.String())
	}
	if len(reporter.all()) != 0 {
		t.Fatalf("diagnostics = %v, want none", reporter.all())
	}
}

func TestStrictWarnsOnUnstableRender(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	var renders int
	child := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		renders++
		_, err := fmt.Fprintf(w, "<p>%d</p>", renders)
		return err
	})
	var buf bytes.Buffer
	if err := Strict("SchedulePage", child, true, reporter).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != "<p>1</p>" {
		t.Fatalf("output = %q, want first render", buf.String())
	}
	assertEvents(t, reporter.events(), EventStrict)
	if d := reporter.all()[0]; d.Severity != SeverityWarning || d.Unit != "SchedulePage" {
		t.Fatalf("diagnostic = %+v, want warning for SchedulePage", d)
	}
}

func TestStrictWarnsOnEmptyRender(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	var buf bytes.Buffer
	if err := Strict("FAQPage", text("  "), true, reporter).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	assertEvents(t, reporter.events(), EventStrict)
}

func TestStrictPropagatesFirstRenderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	child := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })
	err := Strict("FAQPage", child, true, &recordingReporter{}).Render(context.Background(), io.Discard)
	if !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want %v", err, boom)
	}
}
