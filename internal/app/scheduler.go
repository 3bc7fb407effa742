package app

import (
	"context"
	"time"
)

// Scheduler runs fn after d unless ctx is canceled first.
type Scheduler interface {
	AfterFunc(ctx context.Context, d time.Duration, fn func())
}

// TimerScheduler is the wall-clock Scheduler.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(ctx context.Context, d time.Duration, fn func()) {
	timer := time.AfterFunc(d, func() {
		if ctx.Err() == nil {
			fn()
		}
	})
	context.AfterFunc(ctx, func() {
		timer.Stop()
	})
}
