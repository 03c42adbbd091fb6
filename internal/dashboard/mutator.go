package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
)

// Prompter asks the user a yes/no question and blocks for the answer.
type Prompter interface {
	Confirm(message string) bool
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(message string) bool

// Confirm implements Prompter.
func (f PromptFunc) Confirm(message string) bool {
	return f(message)
}

// Outcome is what the user is shown after a mutation.
type Outcome struct {
	// OK is true when the request succeeded.
	OK bool
	// Declined is true when the user refused the confirmation prompt.
	Declined bool
	// Message is the confirmation or alert text.
	Message string
	Err     error
}

// SubmitFunc sends a form to the API.
type SubmitFunc func(ctx context.Context, form *Form) error

// Mutator submits a form and on success reloads its paired loader.
type Mutator struct {
	name    string
	confirm string
	success string
	failure string
	submit  SubmitFunc
	reload  Reloader
	rec     Recorder
}

// MutatorConfig describes a Mutator.
type MutatorConfig struct {
	Name string
	// Confirm, when set, is asked before anything is sent.
	Confirm string
	// Success is shown when the request succeeds.
	Success string
	// Failure prefixes the error detail in the alert.
	Failure string
	Submit  SubmitFunc
	// Reload is invalidated by a successful submission.
	Reload   Reloader
	Recorder Recorder
}

// NewMutator creates a mutator from cfg.
func NewMutator(cfg MutatorConfig) *Mutator {
	rec := cfg.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	failure := cfg.Failure
	if failure == "" {
		failure = "Error"
	}
	return &Mutator{
		name:    cfg.Name,
		confirm: cfg.Confirm,
		success: cfg.Success,
		failure: failure,
		submit:  cfg.Submit,
		reload:  cfg.Reload,
		rec:     rec,
	}
}

// Name identifies the mutator in logs and metrics.
func (m *Mutator) Name() string {
	return m.name
}

// NeedsConfirmation reports whether Run asks the prompter first.
func (m *Mutator) NeedsConfirmation() bool {
	return m.confirm != ""
}

// ConfirmMessage is the question asked before submitting.
func (m *Mutator) ConfirmMessage() string {
	return m.confirm
}

// Run submits form. On success the form is cleared and the paired loader
// reloaded once; on failure the form is left untouched and nothing reloads.
// A declined confirmation returns before any request is made.
func (m *Mutator) Run(ctx context.Context, form *Form, prompt Prompter) Outcome {
	if m.confirm != "" && (prompt == nil || !prompt.Confirm(m.confirm)) {
		m.rec.MutationFinished(m.name, OutcomeDeclined)
		return Outcome{Declined: true}
	}

	ctx, span := tracer.Start(ctx, "mutate "+m.name)
	defer span.End()

	if err := m.submit(ctx, form); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("mutation failed", "mutator", m.name, "err", err)
		m.rec.MutationFinished(m.name, OutcomeError)
		return Outcome{Message: fmt.Sprintf("%s: %v", m.failure, err), Err: err}
	}

	m.rec.MutationFinished(m.name, OutcomeOK)
	if m.reload != nil {
		// Reload failures are logged by the loader.
		_ = m.reload.Load(ctx)
	}
	form.Reset()
	return Outcome{OK: true, Message: m.success}
}

// runAction performs a form-less status change. The paired loader reloads
// whether or not the request succeeded, unless the user declined.
func runAction(ctx context.Context, name, confirm string, prompt Prompter, rec Recorder, reload Reloader, call func(context.Context) error) Outcome {
	if confirm != "" && (prompt == nil || !prompt.Confirm(confirm)) {
		rec.MutationFinished(name, OutcomeDeclined)
		return Outcome{Declined: true}
	}

	ctx, span := tracer.Start(ctx, "action "+name)
	defer span.End()

	err := call(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("action failed", "action", name, "err", err)
		rec.MutationFinished(name, OutcomeError)
	} else {
		rec.MutationFinished(name, OutcomeOK)
	}

	_ = reload.Load(ctx)

	if err != nil {
		return Outcome{Message: fmt.Sprintf("Error: %v", err), Err: err}
	}
	return Outcome{OK: true}
}
