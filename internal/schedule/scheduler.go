package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Token states.
const (
	statePending int32 = iota
	stateRunning
	stateDone
	stateCanceled
)

// Scheduler runs tasks after a delay on their own goroutines.
//
// Thread-safety: All methods are safe for concurrent use.
type Scheduler struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	seq     uint64
	tokens  map[uint64]*Token
	stopped bool
}

// New creates a scheduler.
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		tokens: make(map[uint64]*Token),
	}
}

// Token is the handle of one scheduled task.
type Token struct {
	id     uint64
	s      *Scheduler
	timer  *time.Timer
	task   func(ctx context.Context)
	ctx    context.Context
	cancel context.CancelFunc
	state  atomic.Int32
	done   chan struct{}
	once   sync.Once
}

// Schedule runs task after delay. The task's context is canceled when the
// token is canceled while the task runs, or when the scheduler stops.
//
// Scheduling on a stopped scheduler returns a token that is already
// canceled.
func (s *Scheduler) Schedule(delay time.Duration, task func(ctx context.Context)) *Token {
	ctx, cancel := context.WithCancel(s.ctx)
	t := &Token{
		s:      s,
		task:   task,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		t.state.Store(stateCanceled)
		cancel()
		close(t.done)
		return t
	}
	s.seq++
	t.id = s.seq
	s.tokens[t.id] = t
	s.wg.Add(1)
	t.timer = time.AfterFunc(delay, t.run)
	s.mu.Unlock()

	return t
}

func (t *Token) run() {
	if !t.state.CompareAndSwap(statePending, stateRunning) {
		return
	}
	defer t.finish(stateDone)
	t.task(t.ctx)
}

func (t *Token) finish(state int32) {
	t.once.Do(func() {
		t.state.Store(state)
		t.cancel()
		t.s.mu.Lock()
		delete(t.s.tokens, t.id)
		t.s.mu.Unlock()
		close(t.done)
		t.s.wg.Done()
	})
}

// Cancel stops the task from running. It returns true if the task had not
// started yet. A task that is already running has its context canceled and
// Cancel returns false.
func (t *Token) Cancel() bool {
	if t == nil {
		return false
	}
	if t.state.CompareAndSwap(statePending, stateCanceled) {
		if t.timer != nil {
			t.timer.Stop()
		}
		t.finish(stateCanceled)
		return true
	}
	t.cancel()
	return false
}

// Done returns a channel that is closed once the task has finished or been
// canceled.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Canceled reports whether the token was canceled before its task ran.
func (t *Token) Canceled() bool {
	return t.state.Load() == stateCanceled
}

// Pending returns the number of tasks scheduled or running.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// Stop cancels every pending task, cancels the context of running ones and
// waits for them to return. Later calls to Schedule return canceled tokens.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	tokens := make([]*Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		tokens = append(tokens, t)
	}
	s.mu.Unlock()

	for _, t := range tokens {
		t.Cancel()
	}
	s.cancel()
	s.wg.Wait()
}
