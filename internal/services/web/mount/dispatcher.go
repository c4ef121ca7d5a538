package mount

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/festival/internal/services/web/mount"

var (
	// ErrUnknownUnit reports a unit name with no registry entry.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrLoadFailed wraps every failure to obtain or render a unit.
	ErrLoadFailed = errors.New("unit load failed")
)

// Status is the terminal state of one dispatch.
type Status int

const (
	StatusNoHostSlot Status = iota
	StatusUnknownUnit
	StatusAlreadyMounted
	StatusMounted
	StatusLoadFailed
)

func (s Status) String() string {
	switch s {
	case StatusNoHostSlot:
		return "no_host_slot"
	case StatusUnknownUnit:
		return "unknown_unit"
	case StatusAlreadyMounted:
		return "already_mounted"
	case StatusMounted:
		return "mounted"
	case StatusLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one dispatch.
type Outcome struct {
	Status Status
	Unit   string
	Err    error
}

// Decorator wraps a loaded unit before it is rendered, e.g. with providers.
type Decorator func(templ.Component) templ.Component

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithReporter sets the diagnostic sink.
func WithReporter(reporter Reporter) Option {
	return func(d *Dispatcher) {
		if reporter != nil {
			d.reporter = reporter
		}
	}
}

// WithStrictMode enables the development render guard.
func WithStrictMode(enabled bool) Option {
	return func(d *Dispatcher) {
		d.strict = enabled
	}
}

// WithTracer overrides the tracer used for dispatch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

// WithMetrics records outcomes and load latency.
func WithMetrics(metrics *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

// Dispatcher mounts registry units into host slots.
type Dispatcher struct {
	registry *Registry
	reporter Reporter
	strict   bool
	tracer   trace.Tracer
	metrics  *Metrics
}

// NewDispatcher builds a dispatcher over an immutable registry.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		reporter: NewSlogReporter(slog.Default()),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Registry returns the dispatcher's registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch resolves the unit requested by host and mounts it.
//
// Dispatch never blocks on a unit load: the loader runs on its own goroutine
// and the returned Pending resolves when the unit is mounted or has failed.
// Outcomes that need no load (no slot, unknown unit, slot already claimed)
// come back already resolved. Failures are reported, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, host Host, decorate Decorator) *Pending {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := d.tracer.Start(ctx, "mount.dispatch")

	var slot Slot
	found := false
	if host != nil {
		slot, found = host.HostSlot()
	}
	if !found || slot == nil {
		d.report(ctx, SeverityInfo, EventNoHostSlot, "", "no host slot on page; nothing to mount", nil)
		return d.settle(span, Outcome{Status: StatusNoHostSlot})
	}
	name := slot.UnitName()
	if name == "" {
		d.report(ctx, SeverityInfo, EventNoHostSlot, "", "host slot declares no unit; nothing to mount", nil)
		return d.settle(span, Outcome{Status: StatusNoHostSlot})
	}
	span.SetAttributes(attribute.String("unit.name", name))

	d.report(ctx, SeverityInfo, EventRequested, name, fmt.Sprintf("mount requested for unit %s", name), nil)

	loader, ok := d.registry.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownUnit, name)
		d.report(ctx, SeverityWarning, EventUnknownUnit, name, fmt.Sprintf("unknown unit %s; nothing mounted", name), nil)
		return d.settle(span, Outcome{Status: StatusUnknownUnit, Unit: name, Err: err})
	}
	if !slot.Claim() {
		d.report(ctx, SeverityInfo, EventAlreadyMounted, name, fmt.Sprintf("host slot already mounted; skipping unit %s", name), nil)
		return d.settle(span, Outcome{Status: StatusAlreadyMounted, Unit: name})
	}

	pending := newPending()
	loadCtx := context.WithoutCancel(ctx)
	go func() {
		outcome := d.load(loadCtx, name, loader, slot, decorate)
		d.settleSpan(span, outcome)
		pending.resolve(outcome)
	}()
	return pending
}

func (d *Dispatcher) load(ctx context.Context, name string, loader Loader, slot Slot, decorate Decorator) Outcome {
	start := time.Now()
	defer func() { d.metrics.observeLoad(name, time.Since(start)) }()

	component, err := callLoader(ctx, loader)
	if err == nil && component == nil {
		err = errors.New("loader returned no component")
	}
	if err != nil {
		return d.fail(ctx, name, "load", err)
	}

	component = Strict(name, component, d.strict, d.reporter)
	if decorate != nil {
		component = decorate(component)
	}

	var rendered bytes.Buffer
	if err := renderComponent(ctx, component, &rendered); err != nil {
		return d.fail(ctx, name, "render", err)
	}
	if err := slot.Mount(rendered.Bytes()); err != nil {
		return d.fail(ctx, name, "insert", err)
	}

	d.report(ctx, SeveritySuccess, EventMounted, name, fmt.Sprintf("mounted unit %s", name), nil)
	return Outcome{Status: StatusMounted, Unit: name}
}

func (d *Dispatcher) fail(ctx context.Context, name, stage string, cause error) Outcome {
	err := fmt.Errorf("%w: %s %s: %w", ErrLoadFailed, stage, name, cause)
	d.report(ctx, SeverityError, EventLoadFailed, name, fmt.Sprintf("failed to mount unit %s", name), cause)
	return Outcome{Status: StatusLoadFailed, Unit: name, Err: err}
}

func (d *Dispatcher) report(ctx context.Context, severity Severity, event Event, unit, message string, err error) {
	d.reporter.Report(ctx, Diagnostic{
		Severity: severity,
		Event:    event,
		Unit:     unit,
		Message:  message,
		Err:      err,
	})
}

func (d *Dispatcher) settle(span trace.Span, outcome Outcome) *Pending {
	d.settleSpan(span, outcome)
	pending := newPending()
	pending.resolve(outcome)
	return pending
}

func (d *Dispatcher) settleSpan(span trace.Span, outcome Outcome) {
	d.metrics.observeOutcome(outcome.Unit, outcome.Status)
	span.SetAttributes(attribute.String("mount.outcome", outcome.Status.String()))
	if outcome.Status == StatusLoadFailed && outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Err.Error())
	}
	span.End()
}

// callLoader converts a loader panic into an error.
func callLoader(ctx context.Context, loader Loader) (component templ.Component, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("loader panic: %v", recovered)
		}
	}()
	return loader(ctx)
}

// renderComponent converts a render panic into an error.
func renderComponent(ctx context.Context, component templ.Component, buf *bytes.Buffer) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("render panic: %v", recovered)
		}
	}()
	return component.Render(ctx, buf)
}
