// Package core is the attendance engine: it owns the active day's punches,
// keeps their sequence labels canonical and derives worked time from them.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"ponto.app/ponto/model"
	"ponto.app/ponto/store"
	"ponto.app/ponto/utils"
)

// Engine holds the punches of the current day. It is not safe for
// concurrent use; callers serialise access.
type Engine struct {
	store    store.Store
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger

	day    model.DayKey
	events []model.PunchEvent
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.location = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine loads today's punches from s.
func NewEngine(ctx context.Context, s store.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:    s,
		now:      time.Now,
		location: time.Local,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	day := model.DayKeyOf(e.clock())
	if err := e.switchDay(ctx, day); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) clock() time.Time {
	return e.now().In(e.location)
}

func (e *Engine) Location() *time.Location {
	return e.location
}

func (e *Engine) switchDay(ctx context.Context, day model.DayKey) error {
	events, err := e.store.Load(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", day, err)
	}
	for i := range events {
		events[i].Timestamp = events[i].Timestamp.In(e.location)
	}
	e.day = day
	e.events = events
	return nil
}

// sync moves to a new empty day when the calendar day changed. The old
// list stays in the store as history.
func (e *Engine) sync(ctx context.Context) error {
	today := model.DayKeyOf(e.clock())
	if today == e.day {
		return nil
	}
	e.logger.Info("day rolled over", "from", e.day, "to", today)
	return e.switchDay(ctx, today)
}

// commit relabels next, persists it and only then makes it the active list.
func (e *Engine) commit(ctx context.Context, next []model.PunchEvent) error {
	Relabel(next)
	if err := e.store.Save(ctx, e.day, next); err != nil {
		return fmt.Errorf("failed to save %s: %w", e.day, err)
	}
	e.events = next
	return nil
}

// Today returns the key of the active day.
func (e *Engine) Today(ctx context.Context) (model.DayKey, error) {
	if err := e.sync(ctx); err != nil {
		return "", err
	}
	return e.day, nil
}

// ListTodayEvents returns a copy of the active day's punches in storage order.
func (e *Engine) ListTodayEvents(ctx context.Context) ([]model.PunchEvent, error) {
	if err := e.sync(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(e.events), nil
}

// NextLabel is the label the next automatic punch will get.
func (e *Engine) NextLabel(ctx context.Context) (model.Label, error) {
	if err := e.sync(ctx); err != nil {
		return model.LabelUnset, err
	}
	return NextLabel(e.events), nil
}

// AddPunch records a punch at the current time. An unset label is resolved
// from the sequence; an empty description falls back to the label name.
func (e *Engine) AddPunch(ctx context.Context, label model.Label, description string) (model.PunchEvent, error) {
	if err := e.sync(ctx); err != nil {
		return model.PunchEvent{}, err
	}
	if label == model.LabelUnset {
		label = NextLabel(e.events)
	}

	ev := model.NewPunchEvent(e.clock(), label, strings.TrimSpace(description))
	next := append(slices.Clone(e.events), ev)
	Relabel(next)
	added := &next[len(next)-1]
	if strings.TrimSpace(description) == "" {
		added.Description = added.Label.String()
	}

	if err := e.commit(ctx, next); err != nil {
		return model.PunchEvent{}, err
	}
	e.logger.Debug("punch added", "day", e.day, "label", added.Label, "at", added.Timestamp)
	return *added, nil
}

// EditPunch parses timestamp in the engine's location and delegates to EditPunchAt.
func (e *Engine) EditPunch(ctx context.Context, index int, timestamp string, description string) error {
	if err := e.sync(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(e.events) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	ts, err := utils.ParseLocalTime(timestamp, e.location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	return e.EditPunchAt(ctx, index, ts, description)
}

// EditPunchAt replaces the timestamp and description of the punch at index
// and relabels the day. Labels are never taken from the caller.
func (e *Engine) EditPunchAt(ctx context.Context, index int, ts time.Time, description string) error {
	if err := e.sync(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(e.events) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	if ts.IsZero() {
		return ErrInvalidTimestamp
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}

	next := slices.Clone(e.events)
	next[index].Timestamp = ts.In(e.location)
	next[index].Description = description

	if err := e.commit(ctx, next); err != nil {
		return err
	}
	e.logger.Debug("punch edited", "day", e.day, "index", index)
	return nil
}

// DeletePunch removes the punch at index and relabels the rest.
func (e *Engine) DeletePunch(ctx context.Context, index int) error {
	if err := e.sync(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(e.events) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	next := slices.Delete(slices.Clone(e.events), index, index+1)
	if err := e.commit(ctx, next); err != nil {
		return err
	}
	e.logger.Debug("punch deleted", "day", e.day, "index", index)
	return nil
}

// Summary computes the live work summary of the active day.
func (e *Engine) Summary(ctx context.Context) (WorkSummary, error) {
	if err := e.sync(ctx); err != nil {
		return WorkSummary{}, err
	}
	return ComputeWorkSummary(e.events, ModeLive, e.clock()), nil
}

// ExportToday renders the active day with a live total.
func (e *Engine) ExportToday(ctx context.Context) (string, error) {
	if err := e.sync(ctx); err != nil {
		return "", err
	}
	return ExportDay(e.day, e.events, ModeLive, e.clock())
}
