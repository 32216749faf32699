// Package store persists punch events, one ordered list per calendar day.
package store

import (
	"context"
	"slices"

	"ponto.app/ponto/model"
)

// Store is the event store the attendance engine persists through.
// Implementations keep insertion order and treat a missing day as empty.
type Store interface {
	Load(ctx context.Context, day model.DayKey) ([]model.PunchEvent, error)
	Save(ctx context.Context, day model.DayKey, events []model.PunchEvent) error
	// ListDays returns every stored day, most recent first.
	ListDays(ctx context.Context) ([]model.DayKey, error)
	// DeleteDay removes a day. Deleting a missing day is not an error.
	DeleteDay(ctx context.Context, day model.DayKey) error
}

func sortDaysDesc(days []model.DayKey) {
	slices.Sort(days)
	slices.Reverse(days)
}
