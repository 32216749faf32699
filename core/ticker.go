package core

import (
	"context"
	"time"

	"ponto.app/ponto/model"
)

// RunTicker calls fn right away and then every interval until ctx is done.
func RunTicker(ctx context.Context, interval time.Duration, fn func(time.Time)) error {
	fn(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			fn(t)
		}
	}
}

// TargetWatcher reports, once per day, the moment an open period pushes the
// worked time past the daily target.
type TargetWatcher struct {
	OnReached func(day model.DayKey, s WorkSummary)

	notified model.DayKey
}

func (w *TargetWatcher) Observe(day model.DayKey, s WorkSummary) {
	if !s.Open || s.Worked < TargetDuration || w.notified == day {
		return
	}
	w.notified = day
	if w.OnReached != nil {
		w.OnReached(day, s)
	}
}
