package store

import (
	"context"
	"slices"

	"ponto.app/ponto/model"
)

// Memory keeps days in a map. It is not safe for concurrent use.
type Memory struct {
	days map[model.DayKey][]model.PunchEvent
}

func NewMemory() *Memory {
	return &Memory{days: make(map[model.DayKey][]model.PunchEvent)}
}

func (m *Memory) Load(_ context.Context, day model.DayKey) ([]model.PunchEvent, error) {
	events, ok := m.days[day]
	if !ok {
		return []model.PunchEvent{}, nil
	}
	return slices.Clone(events), nil
}

func (m *Memory) Save(_ context.Context, day model.DayKey, events []model.PunchEvent) error {
	m.days[day] = slices.Clone(events)
	return nil
}

func (m *Memory) ListDays(_ context.Context) ([]model.DayKey, error) {
	days := make([]model.DayKey, 0, len(m.days))
	for d := range m.days {
		days = append(days, d)
	}
	sortDaysDesc(days)
	return days, nil
}

func (m *Memory) DeleteDay(_ context.Context, day model.DayKey) error {
	delete(m.days, day)
	return nil
}
