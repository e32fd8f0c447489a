package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, tok *Token) {
	t.Helper()
	select {
	case <-tok.Done():
	case <-time.After(time.Second):
		t.Fatal("token did not finish")
	}
}

func TestScheduler_RunsAfterDelay(t *testing.T) {
	s := New()
	defer s.Stop()

	var ran atomic.Bool
	start := time.Now()
	tok := s.Schedule(20*time.Millisecond, func(context.Context) { ran.Store(true) })

	waitDone(t, tok)
	assert.True(t, ran.Load())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.False(t, tok.Canceled())
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_CancelBeforeRun(t *testing.T) {
	s := New()
	defer s.Stop()

	var ran atomic.Bool
	tok := s.Schedule(50*time.Millisecond, func(context.Context) { ran.Store(true) })

	assert.True(t, tok.Cancel())
	assert.True(t, tok.Canceled())
	waitDone(t, tok)

	time.Sleep(80 * time.Millisecond)
	assert.False(t, ran.Load())
	assert.False(t, tok.Cancel(), "second cancel is a no-op")
}

func TestScheduler_CancelWhileRunningCancelsContext(t *testing.T) {
	s := New()
	defer s.Stop()

	started := make(chan struct{})
	var sawCancel atomic.Bool
	tok := s.Schedule(0, func(ctx context.Context) {
		close(started)
		select {
		case <-ctx.Done():
			sawCancel.Store(true)
		case <-time.After(time.Second):
		}
	})

	<-started
	assert.False(t, tok.Cancel())
	waitDone(t, tok)
	assert.True(t, sawCancel.Load())
}

func TestScheduler_Stop(t *testing.T) {
	s := New()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		s.Schedule(time.Hour, func(context.Context) { ran.Add(1) })
	}
	require.Equal(t, 5, s.Pending())

	s.Stop()
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, int32(0), ran.Load())

	tok := s.Schedule(0, func(context.Context) { ran.Add(1) })
	assert.True(t, tok.Canceled())
	waitDone(t, tok)
	s.Stop()
}

func TestDebouncer_Basic(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		callCount.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Call()
	}
	assert.True(t, d.IsPending())

	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, int32(1), callCount.Load())
	assert.False(t, d.IsPending())
}

func TestDebouncer_SpacedCalls(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(30*time.Millisecond, func() {
		callCount.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 3; i++ {
		d.Call()
		time.Sleep(90 * time.Millisecond)
	}

	assert.Equal(t, int32(3), callCount.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		callCount.Add(1)
	})
	defer d.Stop()

	d.Call()
	d.Cancel()

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), callCount.Load())
}

func TestDebouncer_CallImmediate(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(100*time.Millisecond, func() {
		callCount.Add(1)
	})
	defer d.Stop()

	d.Call()
	d.CallImmediate()
	assert.Equal(t, int32(1), callCount.Load())

	// The scheduled call must not fire as well.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), callCount.Load())

	// Nothing pending, nothing to run.
	d.CallImmediate()
	assert.Equal(t, int32(1), callCount.Load())
}

func TestDebouncer_SharedScheduler(t *testing.T) {
	s := New()
	var callCount atomic.Int32

	d := NewDebouncer(10*time.Millisecond, func() { callCount.Add(1) }, WithScheduler(s))
	d.Call()
	time.Sleep(60 * time.Millisecond)
	d.Stop()

	assert.Equal(t, int32(1), callCount.Load())

	// Stopping the debouncer leaves a shared scheduler running.
	tok := s.Schedule(0, func(context.Context) {})
	waitDone(t, tok)
	assert.False(t, tok.Canceled())
	s.Stop()
}
