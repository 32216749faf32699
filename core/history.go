package core

import (
	"context"
	"fmt"
	"time"

	"ponto.app/ponto/model"
	"ponto.app/ponto/utils"
)

// DayOverview is one line of the history list.
type DayOverview struct {
	Day     model.DayKey  `json:"day"`
	Date    string        `json:"date"`
	Times   []string      `json:"times"`
	Worked  time.Duration `json:"worked"`
	Balance time.Duration `json:"balance"`
}

// ListHistoryDays returns every stored day, most recent first.
func (e *Engine) ListHistoryDays(ctx context.Context) ([]model.DayKey, error) {
	days, err := e.store.ListDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	return days, nil
}

// HistoryDay reads a stored day without making it active.
func (e *Engine) HistoryDay(ctx context.Context, day model.DayKey) ([]model.PunchEvent, error) {
	events, err := e.store.Load(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", day, err)
	}
	for i := range events {
		events[i].Timestamp = events[i].Timestamp.In(e.location)
	}
	return events, nil
}

// ExportHistoryDay renders a stored day. A trailing open period is not counted.
func (e *Engine) ExportHistoryDay(ctx context.Context, day model.DayKey) (string, error) {
	events, err := e.HistoryDay(ctx, day)
	if err != nil {
		return "", err
	}
	return ExportDay(day, events, ModeHistorical, e.clock())
}

// HistoryOverview lists every stored day with its punch times and total.
func (e *Engine) HistoryOverview(ctx context.Context) ([]DayOverview, error) {
	days, err := e.ListHistoryDays(ctx)
	if err != nil {
		return nil, err
	}

	overview := make([]DayOverview, 0, len(days))
	for _, day := range days {
		events, err := e.HistoryDay(ctx, day)
		if err != nil {
			return nil, err
		}
		summary := ComputeWorkSummary(events, ModeHistorical, e.clock())
		overview = append(overview, DayOverview{
			Day:     day,
			Date:    day.Display(),
			Times:   utils.Map(events, func(ev model.PunchEvent) string { return ev.Timestamp.Format("15:04") }),
			Worked:  summary.Worked,
			Balance: summary.Balance,
		})
	}
	return overview, nil
}

// DeleteHistoryDays removes the given days. Deleting the active day also
// clears the in-memory list.
func (e *Engine) DeleteHistoryDays(ctx context.Context, days []model.DayKey) error {
	for _, day := range days {
		if _, err := model.ParseDayKey(string(day)); err != nil {
			return err
		}
	}
	if err := e.sync(ctx); err != nil {
		return err
	}

	for _, day := range days {
		if err := e.store.DeleteDay(ctx, day); err != nil {
			return fmt.Errorf("failed to delete %s: %w", day, err)
		}
		if day == e.day {
			e.events = []model.PunchEvent{}
		}
		e.logger.Debug("day deleted", "day", day)
	}
	return nil
}

// ClearHistory deletes every stored day.
func (e *Engine) ClearHistory(ctx context.Context) error {
	days, err := e.ListHistoryDays(ctx)
	if err != nil {
		return err
	}
	return e.DeleteHistoryDays(ctx, days)
}
