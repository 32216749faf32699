package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"ponto.app/ponto/model"
)

// Debounced coalesces rapid saves of the same day into one write to the
// wrapped store after delay has passed without further saves. Reads see
// pending writes. Close must be called on teardown to flush them.
type Debounced struct {
	inner  Store
	delay  time.Duration
	logger *slog.Logger

	// writeMu serialises every call into inner so writes land in the order issued
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[model.DayKey][]model.PunchEvent
	timers  map[model.DayKey]*time.Timer
	closed  bool
}

func NewDebounced(inner Store, delay time.Duration, logger *slog.Logger) *Debounced {
	if logger == nil {
		logger = slog.Default()
	}
	return &Debounced{
		inner:   inner,
		delay:   delay,
		logger:  logger,
		pending: make(map[model.DayKey][]model.PunchEvent),
		timers:  make(map[model.DayKey]*time.Timer),
	}
}

func (d *Debounced) Load(ctx context.Context, day model.DayKey) ([]model.PunchEvent, error) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	events, ok := d.pending[day]
	d.mu.Unlock()
	if ok {
		return slices.Clone(events), nil
	}
	return d.inner.Load(ctx, day)
}

func (d *Debounced) Save(ctx context.Context, day model.DayKey, events []model.PunchEvent) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.writeMu.Lock()
		defer d.writeMu.Unlock()
		return d.inner.Save(ctx, day, events)
	}
	d.pending[day] = slices.Clone(events)
	if t, ok := d.timers[day]; ok {
		t.Stop()
	}
	d.timers[day] = time.AfterFunc(d.delay, func() {
		if err := d.flushDay(context.Background(), day); err != nil {
			d.logger.Error("debounced save failed", "day", day, "error", err)
		}
	})
	d.mu.Unlock()
	return nil
}

func (d *Debounced) ListDays(ctx context.Context) ([]model.DayKey, error) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	days, err := d.inner.ListDays(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	for day := range d.pending {
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	d.mu.Unlock()

	sortDaysDesc(days)
	return days, nil
}

func (d *Debounced) DeleteDay(ctx context.Context, day model.DayKey) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	delete(d.pending, day)
	if t, ok := d.timers[day]; ok {
		t.Stop()
		delete(d.timers, day)
	}
	d.mu.Unlock()

	return d.inner.DeleteDay(ctx, day)
}

func (d *Debounced) flushDay(ctx context.Context, day model.DayKey) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	events, ok := d.pending[day]
	delete(d.pending, day)
	if t, ok := d.timers[day]; ok {
		t.Stop()
		delete(d.timers, day)
	}
	d.mu.Unlock()
	if !ok {
		return nil
	}

	if err := d.inner.Save(ctx, day, events); err != nil {
		// keep it for the next flush unless a newer save replaced it
		d.mu.Lock()
		if _, newer := d.pending[day]; !newer {
			d.pending[day] = events
		}
		d.mu.Unlock()
		return err
	}
	return nil
}

// Flush writes every pending day now.
func (d *Debounced) Flush(ctx context.Context) error {
	d.mu.Lock()
	days := make([]model.DayKey, 0, len(d.pending))
	for day := range d.pending {
		days = append(days, day)
	}
	d.mu.Unlock()

	var errs []error
	for _, day := range days {
		if err := d.flushDay(ctx, day); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes pending writes; later saves go straight to the wrapped store.
func (d *Debounced) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.Flush(ctx)
}
