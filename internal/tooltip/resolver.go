// Package tooltip resolves the content of knowledge-base hover tooltips.
//
// Each tooltip kind has a Strategy. Static tooltips carry their content from
// the start; level tooltips look up an injected description table when
// shown; evidence tooltips show a placeholder and start a cancellable Task
// that fetches publication metadata, renders it together with local
// abstracts, and pushes the result into the widget if the widget is still
// showing.
package tooltip

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/oncokb/kbtip/internal/levels"
	"github.com/oncokb/kbtip/internal/metrics"
)

// Resolver selects a strategy by kind and drives the show lifecycle.
type Resolver struct {
	strategies   map[Kind]Strategy
	logger       *zap.Logger
	placeholder  string
	errorContent string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithPlaceholder overrides the loading placeholder markup.
func WithPlaceholder(html string) Option {
	return func(r *Resolver) {
		r.placeholder = html
	}
}

// WithErrorContent overrides the markup shown when resolution fails.
func WithErrorContent(html string) Option {
	return func(r *Resolver) {
		r.errorContent = html
	}
}

// WithStrategy replaces the strategy for s.Kind().
func WithStrategy(s Strategy) Option {
	return func(r *Resolver) {
		r.strategies[s.Kind()] = s
	}
}

// NewResolver builds a resolver. source serves gene-evidence tooltips and
// table serves gene-level tooltips; table is never modified.
func NewResolver(source PublicationSource, table levels.Descriptions, opts ...Option) *Resolver {
	r := &Resolver{
		strategies:   make(map[Kind]Strategy),
		logger:       zap.NewNop(),
		placeholder:  LoadingPlaceholder,
		errorContent: ErrorContent,
	}

	for _, opt := range opts {
		opt(r)
	}

	// Installed after options so they see the final placeholder; explicit
	// WithStrategy replacements are kept.

	defaults := []Strategy{
		staticStrategy{},
		levelStrategy{table: table, placeholder: r.placeholder},
		evidenceStrategy{source: source, placeholder: r.placeholder},
	}
	for _, s := range defaults {
		if _, ok := r.strategies[s.Kind()]; !ok {
			r.strategies[s.Kind()] = s
		}
	}

	return r
}

// Strategy returns the strategy for k.
func (r *Resolver) Strategy(k Kind) Strategy {
	if s, ok := r.strategies[k]; ok {
		return s
	}
	return r.strategies[KindDefault]
}

// Options returns the initial widget configuration for p: placeholder
// content for deferred kinds, the static content otherwise.
func (r *Resolver) Options(p Params) Options {
	return newOptions(r.Strategy(p.Kind).Placeholder(p), p.My, p.At)
}

// Render resolves p's final content synchronously. Failures produce the
// error content together with the error.
func (r *Resolver) Render(ctx context.Context, p Params) (ContentResult, error) {
	s := r.Strategy(p.Kind)
	res, err := s.BuildContent(ctx, p)
	if err != nil {
		metrics.TooltipRenders.WithLabelValues(p.Kind.String(), string(OutcomeFailed)).Inc()
		return ContentResult{HTML: r.errorContent, Classes: ClassesEvidence}, err
	}
	metrics.TooltipRenders.WithLabelValues(p.Kind.String(), string(OutcomeApplied)).Inc()
	return res, nil
}

// Show handles a show event for a widget configured with Options(p).
// The returned task completes immediately for static and level tooltips.
// For evidence tooltips it runs in the background until the content is
// applied, the task is canceled, or ctx ends.
func (r *Resolver) Show(ctx context.Context, w Widget, ev Event, p Params) *Task {
	s := r.Strategy(p.Kind)

	switch s.Mode() {
	case ModeStatic:
		return completedTask(OutcomeNoop, nil)
	case ModeSync:
		res, err := s.BuildContent(ctx, p)
		outcome := r.apply(ctx, nil, w, ev, p, res, err)
		return completedTask(outcome, err)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	task := newTask(cancel)
	logger := r.logger.With(zap.String("task", task.ID), zap.Stringer("kind", p.Kind))

	go func() {
		defer cancel()
		res, err := s.BuildContent(taskCtx, p)
		outcome := r.apply(taskCtx, task, w, ev, p, res, err)
		if err != nil && outcome == OutcomeFailed {
			logger.Warn("tooltip content failed", zap.Error(err))
		} else {
			logger.Debug("tooltip task finished", zap.String("outcome", string(outcome)))
		}
		task.finish(outcome, err)
	}()

	return task
}

// apply pushes resolved content into w unless the task was canceled or the
// widget stopped showing in the meantime. task is nil for synchronous
// resolution.
func (r *Resolver) apply(ctx context.Context, task *Task, w Widget, ev Event, p Params, res ContentResult, err error) Outcome {
	outcome := OutcomeApplied
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		outcome = OutcomeCanceled
	case !w.Visible():
		outcome = OutcomeStale
	case err != nil:
		outcome = OutcomeFailed
		res = ContentResult{HTML: r.errorContent, Classes: ClassesEvidence}
	}

	if outcome == OutcomeApplied || outcome == OutcomeFailed {
		// Visible may have raced with a hide that canceled the task.
		pushed := task.commit(ctx, func() {
			w.SetContent(res.HTML, res.Classes)
			w.Reposition(ev, false)
		})
		if !pushed {
			outcome = OutcomeCanceled
		}
	}

	metrics.TooltipRenders.WithLabelValues(p.Kind.String(), string(outcome)).Inc()
	return outcome
}

// Tooltip binds a resolver to one widget instance and tracks the task of
// the current show, so that hiding or disposing cancels outstanding work.
type Tooltip struct {
	resolver *Resolver
	widget   Widget
	params   Params

	mu       sync.Mutex
	task     *Task
	disposed bool
}

// Bind creates the tooltip state for one widget.
func (r *Resolver) Bind(w Widget, p Params) *Tooltip {
	return &Tooltip{resolver: r, widget: w, params: p}
}

// Options returns the widget's initial configuration.
func (t *Tooltip) Options() Options {
	return t.resolver.Options(t.params)
}

// OnShow starts content resolution for ev, canceling any earlier task.
// It returns nil after Dispose.
func (t *Tooltip) OnShow(ctx context.Context, ev Event) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return nil
	}
	if t.task != nil {
		t.task.Cancel()
	}
	t.task = t.resolver.Show(ctx, t.widget, ev, t.params)
	return t.task
}

// OnHide cancels the current task, if any.
func (t *Tooltip) OnHide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.task != nil {
		t.task.Cancel()
	}
}

// Dispose cancels outstanding work; later show events are ignored.
func (t *Tooltip) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disposed = true
	if t.task != nil {
		t.task.Cancel()
		t.task = nil
	}
}
