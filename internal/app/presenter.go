package app

import (
	"context"
	"sync"

	"movie-quiz/internal/domain"
)

// Presenter is the presentation boundary driven by the engine. It renders
// what it is told and never makes decisions. Every call happens on the
// engine's Dispatcher.
type Presenter interface {
	Render(vm domain.RoundViewModel)
	RenderSummary(summary domain.Summary)
	SetImageFeedback(isCorrect bool)
	SetInputEnabled(enabled bool)
	ShowLoading()
	HideLoading()
	ShowError(message, retryLabel string)
}

// Dispatcher serializes work onto one designated goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a plain function to Dispatcher.
type DispatchFunc func(fn func())

func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}

// QueueDispatcher runs dispatched funcs in FIFO order on a single goroutine.
// The queue is unbounded so a dispatched func may dispatch again without
// blocking.
type QueueDispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closed  bool
	stopped chan struct{}
}

func NewQueueDispatcher() *QueueDispatcher {
	d := &QueueDispatcher{stopped: make(chan struct{})}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

func (d *QueueDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.queue = append(d.queue, fn)
	d.cond.Signal()
}

// Close drains queued work and stops the goroutine. It must not be called
// from a dispatched func.
func (d *QueueDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		d.cond.Broadcast()
	}
	d.mu.Unlock()
	<-d.stopped
}

func (d *QueueDispatcher) loop() {
	defer close(d.stopped)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		fn()
	}
}

// EngineFactory builds an engine bound to the presenter of one session.
type EngineFactory func(ctx context.Context, presenter Presenter) *QuizEngine

// SessionRepository keeps one engine per player session (chat, connection).
type SessionRepository interface {
	GetOrCreate(id string, create func() *QuizEngine) (*QuizEngine, bool)
	Get(id string) (*QuizEngine, bool)
	Delete(id string)
	Count() int
}

// NopPresenter discards every call.
type NopPresenter struct{}

func (NopPresenter) Render(domain.RoundViewModel) {}
func (NopPresenter) RenderSummary(domain.Summary) {}
func (NopPresenter) SetImageFeedback(bool)        {}
func (NopPresenter) SetInputEnabled(bool)         {}
func (NopPresenter) ShowLoading()                 {}
func (NopPresenter) HideLoading()                 {}
func (NopPresenter) ShowError(string, string)     {}
