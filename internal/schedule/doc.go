// Package schedule provides cancellable delayed tasks and a debouncer built
// on them.
//
// A Scheduler runs each task on its own goroutine after a delay and hands
// back a Token. Canceling the token before the delay elapses prevents the
// task from running; canceling it afterwards cancels the task's context.
//
//	s := schedule.New()
//	defer s.Stop()
//
//	tok := s.Schedule(100*time.Millisecond, func(ctx context.Context) {
//		recompute(ctx)
//	})
//	// A newer edit arrived.
//	tok.Cancel()
//
// Debouncer coalesces bursts of calls into one callback after a quiet
// period. The config watcher uses it to collapse editor save bursts.
package schedule
