package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("github.com/evcraddock/rentdesk/internal/dashboard")

// Reloader re-fetches state after a mutation invalidated it.
type Reloader interface {
	Load(ctx context.Context) error
}

// FetchFunc issues the loader's single request.
type FetchFunc[T any] func(ctx context.Context, params url.Values) (T, error)

// RenderFunc writes a fetched value into the page. target is never nil.
type RenderFunc[T any] func(page *Page, target *Container, v T) error

// Loader fetches one resource and renders it into the container it owns.
//
// Every load takes a fresh request token; a response that arrives after a
// newer load started is dropped, so the latest request always wins the render.
type Loader[T any] struct {
	name   string
	target string
	page   *Page
	fetch  FetchFunc[T]
	render RenderFunc[T]
	rec    Recorder

	mu       sync.Mutex
	latest   string
	value    T
	loaded   bool
	attempts atomic.Int64
}

// NewLoader creates a loader rendering into container target of page.
func NewLoader[T any](name string, page *Page, target string, fetch FetchFunc[T], render RenderFunc[T], rec Recorder) *Loader[T] {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Loader[T]{
		name:   name,
		target: target,
		page:   page,
		fetch:  fetch,
		render: render,
		rec:    rec,
	}
}

// Name identifies the loader in logs and metrics.
func (l *Loader[T]) Name() string {
	return l.name
}

// Target is the id of the container the loader owns.
func (l *Loader[T]) Target() string {
	return l.target
}

// Attempts returns how many loads issued a request.
func (l *Loader[T]) Attempts() int {
	return int(l.attempts.Load())
}

// Load fetches and renders without query parameters.
func (l *Loader[T]) Load(ctx context.Context) error {
	return l.LoadWith(ctx, nil)
}

// LoadWith fetches with params and replaces the container content. When the
// page has no such container it returns nil without a request. Failures are
// logged and leave the container as it was.
func (l *Loader[T]) LoadWith(ctx context.Context, params url.Values) error {
	target := l.page.Container(l.target)
	if target == nil {
		return nil
	}

	ctx, span := tracer.Start(ctx, "load "+l.name)
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.container", l.target))

	token := uuid.NewString()
	l.mu.Lock()
	l.latest = token
	l.mu.Unlock()
	l.attempts.Add(1)

	v, err := l.fetch(ctx, params)
	if err != nil {
		return l.fail(span, fmt.Errorf("loading %s: %w", l.name, err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.latest != token {
		slog.Debug("discarding stale response", "loader", l.name)
		l.rec.LoadFinished(l.name, OutcomeStale)
		return nil
	}
	if err := l.render(l.page, target, v); err != nil {
		return l.fail(span, fmt.Errorf("rendering %s: %w", l.name, err))
	}

	l.value, l.loaded = v, true

	l.rec.LoadFinished(l.name, OutcomeOK)
	return nil
}

// Latest returns the value behind the current render, and false until a
// load has rendered.
func (l *Loader[T]) Latest() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}

func (l *Loader[T]) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.Error("load failed", "loader", l.name, "container", l.target, "err", err)
	l.rec.LoadFinished(l.name, OutcomeError)
	return err
}

// pendingLoader is a loader that can tell whether it already ran.
type pendingLoader interface {
	Reloader
	Target() string
	Attempts() int
}

// Group is the set of loaders backing one page.
type Group []pendingLoader

// LoadAll runs every loader concurrently and returns the first error.
func (g Group) LoadAll(ctx context.Context) error {
	return g.run(ctx, func(pendingLoader) bool { return true })
}

// LoadPending runs the loaders that have not issued a request yet, e.g. the
// ones a mutation did not already reload.
func (g Group) LoadPending(ctx context.Context) error {
	return g.run(ctx, func(l pendingLoader) bool { return l.Attempts() == 0 })
}

// Find returns the loader owning container id, or nil.
func (g Group) Find(id string) Reloader {
	for _, l := range g {
		if l.Target() == id {
			return l
		}
	}
	return nil
}

func (g Group) run(ctx context.Context, want func(pendingLoader) bool) error {
	var eg errgroup.Group
	for _, l := range g {
		if !want(l) {
			continue
		}
		eg.Go(func() error {
			return l.Load(ctx)
		})
	}
	return eg.Wait()
}
