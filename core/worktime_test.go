package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ponto.app/ponto/model"
)

var brt = time.FixedZone("BRT", -3*3600)

func at(h, m int) time.Time {
	return time.Date(2026, 10, 18, h, m, 0, 0, brt)
}

func punch(h, m int, l model.Label) model.PunchEvent {
	return model.PunchEvent{Timestamp: at(h, m), Label: l, Description: l.String()}
}

func fullDay(outHour int) []model.PunchEvent {
	return []model.PunchEvent{
		punch(8, 0, model.FirstIn),
		punch(12, 0, model.FirstOut),
		punch(13, 0, model.SecondIn),
		punch(outHour, 0, model.SecondOut),
	}
}

func TestComputeWorkSummary(t *testing.T) {
	now := at(20, 0)

	tests := []struct {
		name    string
		events  []model.PunchEvent
		worked  time.Duration
		balance time.Duration
		status  Status
	}{
		{"empty", nil, 0, -8 * time.Hour, StatusBelow},
		{"exactly eight hours", fullDay(17), 8 * time.Hour, 0, StatusExactly},
		{"morning only", fullDay(17)[:2], 4 * time.Hour, -4 * time.Hour, StatusBelow},
		{"nine hours", fullDay(18), 9 * time.Hour, time.Hour, StatusAbove},
		{
			"exit without entry is ignored",
			[]model.PunchEvent{punch(7, 0, model.FirstOut), punch(8, 0, model.FirstIn), punch(9, 0, model.SecondOut)},
			time.Hour, -7 * time.Hour, StatusBelow,
		},
		{
			"second entry replaces open marker",
			[]model.PunchEvent{punch(8, 0, model.FirstIn), punch(10, 0, model.SecondIn), punch(11, 0, model.SecondOut)},
			time.Hour, -7 * time.Hour, StatusBelow,
		},
		{
			"free-form punches are not counted",
			[]model.PunchEvent{punch(8, 0, model.FirstIn), punch(9, 0, model.Other), punch(10, 0, model.FirstOut)},
			2 * time.Hour, -6 * time.Hour, StatusBelow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []Mode{ModeLive, ModeHistorical} {
				s := ComputeWorkSummary(tt.events, mode, now)
				assert.Equal(t, tt.worked, s.Worked)
				assert.Equal(t, tt.balance, s.Balance)
				assert.Equal(t, tt.status, s.Status())
				assert.False(t, s.Open)
				assert.Nil(t, s.ProjectedCheckout)
			}
		})
	}
}

func TestComputeWorkSummaryIgnoresStorageOrder(t *testing.T) {
	chronological := fullDay(18)
	shuffled := []model.PunchEvent{chronological[2], chronological[0], chronological[3], chronological[1]}

	want := ComputeWorkSummary(chronological, ModeHistorical, at(20, 0))
	got := ComputeWorkSummary(shuffled, ModeHistorical, at(20, 0))
	assert.Equal(t, want.Worked, got.Worked)
	assert.Equal(t, 9*time.Hour, got.Worked)
}

func TestComputeWorkSummaryStableForEqualTimestamps(t *testing.T) {
	// same instant: entry stays before exit because the sort is stable
	events := []model.PunchEvent{punch(8, 0, model.FirstIn), punch(8, 0, model.FirstOut), punch(9, 0, model.SecondIn), punch(10, 0, model.SecondOut)}
	s := ComputeWorkSummary(events, ModeHistorical, at(20, 0))
	assert.Equal(t, time.Hour, s.Worked)
}

func TestComputeWorkSummaryOpenPeriod(t *testing.T) {
	events := []model.PunchEvent{
		punch(8, 0, model.FirstIn),
		punch(12, 0, model.FirstOut),
		punch(13, 0, model.SecondIn),
	}
	now := at(15, 0)

	t.Run("live counts up to now", func(t *testing.T) {
		s := ComputeWorkSummary(events, ModeLive, now)
		assert.Equal(t, 6*time.Hour, s.Worked)
		assert.Equal(t, -2*time.Hour, s.Balance)
		assert.True(t, s.Open)
		require.NotNil(t, s.OpenSince)
		assert.Equal(t, at(13, 0), *s.OpenSince)
		require.NotNil(t, s.ProjectedCheckout)
		assert.Equal(t, at(17, 0), *s.ProjectedCheckout)
		assert.Equal(t, "Sugestão de saída: 17:00 (8h completas)", CheckoutHint(s))
	})

	t.Run("historical drops the open period", func(t *testing.T) {
		s := ComputeWorkSummary(events, ModeHistorical, now)
		assert.Equal(t, 4*time.Hour, s.Worked)
		assert.True(t, s.Open)
		assert.Nil(t, s.ProjectedCheckout)
		assert.Empty(t, CheckoutHint(s))
	})

	t.Run("target already reached", func(t *testing.T) {
		s := ComputeWorkSummary(events, ModeLive, at(18, 30))
		assert.Equal(t, 9*time.Hour+30*time.Minute, s.Worked)
		require.NotNil(t, s.ProjectedCheckout)
		assert.Equal(t, at(18, 30), *s.ProjectedCheckout)
		assert.Equal(t, "Já completou as 8h de trabalho", CheckoutHint(s))
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "08:00", FormatHoursMinutes(8*time.Hour))
	assert.Equal(t, "07:59", FormatHoursMinutes(8*time.Hour-time.Second))
	assert.Equal(t, "123:05", FormatHoursMinutes(123*time.Hour+5*time.Minute))
	assert.Equal(t, "+00:00", FormatBalance(0))
	assert.Equal(t, "+01:30", FormatBalance(90*time.Minute))
	assert.Equal(t, "-04:00", FormatBalance(-4*time.Hour))
}
