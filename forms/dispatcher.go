package forms

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// ============================================================================
// Event Loop
// ============================================================================

// EventLoop is a pure Go Threading implementation. The UI thread is whatever
// goroutine calls RunLoop.
type EventLoop struct {
	wake chan struct{}

	mu      sync.Mutex
	handler func()
}

// NewEventLoop creates an idle event loop.
func NewEventLoop() *EventLoop {
	return &EventLoop{wake: make(chan struct{}, 1)}
}

// Signal wakes the loop. Signals that arrive while a wake-up is pending are
// merged into it.
func (l *EventLoop) Signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *EventLoop) SetSignaledHandler(fn func()) {
	l.mu.Lock()
	l.handler = fn
	l.mu.Unlock()
}

// RunLoop blocks until ctx is done, running the signaled handler after each
// wake-up.
func (l *EventLoop) RunLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
			l.mu.Lock()
			h := l.handler
			l.mu.Unlock()
			if h != nil {
				h()
			}
		}
	}
}

// ============================================================================
// Dispatcher
// ============================================================================

// JobPanicError reports a posted job that panicked on the UI thread.
type JobPanicError struct {
	Value any
	Stack []byte
}

func (e *JobPanicError) Error() string {
	return fmt.Sprintf("forms: UI job panicked: %v", e.Value)
}

// Dispatcher owns the UI thread's work queue. Post is safe from any
// goroutine; everything else is for the UI thread.
type Dispatcher struct {
	threading Threading

	mu   sync.Mutex
	jobs []func()

	running bool
	idle    []func()
	fail    func(error)
}

// NewDispatcher binds a dispatcher to the platform's threading.
func NewDispatcher(t Threading) *Dispatcher {
	d := &Dispatcher{threading: t}
	t.SetSignaledHandler(d.RunJobs)
	return d
}

// Post queues fn to run on the UI thread. Jobs from one goroutine run in the
// order they were posted. Post never blocks on the UI thread.
func (d *Dispatcher) Post(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.jobs = append(d.jobs, fn)
	d.mu.Unlock()
	d.threading.Signal()
}

// Pending returns the number of queued jobs.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.jobs)
}

// OnIdle registers fn to run after every batch of jobs. The application uses
// this to paint invalidated surfaces.
func (d *Dispatcher) OnIdle(fn func()) {
	d.idle = append(d.idle, fn)
}

// OnFailure sets the handler that receives recovered job panics.
func (d *Dispatcher) OnFailure(fn func(error)) {
	d.fail = fn
}

// RequestIdle makes sure an idle pass happens soon even if no job is queued.
func (d *Dispatcher) RequestIdle() {
	d.threading.Signal()
}

// RunJobs drains the queue on the UI thread and then runs the idle hooks.
// Jobs posted while draining run in a later batch of the same call. Nested
// calls from inside a job return immediately.
func (d *Dispatcher) RunJobs() {
	if d.running {
		return
	}
	d.running = true
	defer func() { d.running = false }()

	for {
		d.mu.Lock()
		batch := d.jobs
		d.jobs = nil
		d.mu.Unlock()

		if len(batch) == 0 {
			break
		}
		for _, job := range batch {
			d.runJob(job)
		}
	}

	for _, fn := range d.idle {
		d.runJob(fn)
	}
}

func (d *Dispatcher) runJob(job func()) {
	defer func() {
		if r := recover(); r != nil {
			err := &JobPanicError{Value: r, Stack: debug.Stack()}
			if d.fail == nil {
				panic(err)
			}
			d.fail(err)
		}
	}()
	job()
}

// MainLoop runs the platform loop on the calling goroutine until ctx is
// cancelled or the platform fails.
func (d *Dispatcher) MainLoop(ctx context.Context) error {
	return d.threading.RunLoop(ctx)
}

// ============================================================================
// Timers
// ============================================================================

// Timer is a pending AfterFunc callback.
type Timer struct {
	t       *time.Timer
	mu      sync.Mutex
	stopped bool
}

// Stop prevents the callback from running if it has not started yet. It
// reports whether the call stopped the timer.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}

// AfterFunc runs fn on the UI thread once d has elapsed.
func (d *Dispatcher) AfterFunc(after time.Duration, fn func()) *Timer {
	tm := &Timer{}
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.t = time.AfterFunc(after, func() {
		d.Post(func() {
			tm.mu.Lock()
			stopped := tm.stopped
			tm.stopped = true
			tm.mu.Unlock()
			if !stopped {
				fn()
			}
		})
	})
	return tm
}
