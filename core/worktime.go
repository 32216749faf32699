package core

import (
	"fmt"
	"slices"
	"time"

	"ponto.app/ponto/model"
	"ponto.app/ponto/utils"
)

// TargetDuration is the daily work target.
const TargetDuration = 8 * time.Hour

// Mode selects how a trailing open period is accounted.
type Mode int

const (
	// ModeLive counts an unmatched entry up to now.
	ModeLive Mode = iota
	// ModeHistorical drops an unmatched trailing entry. Totals for a past
	// day that ends open are therefore lower than the live figure was.
	ModeHistorical
)

type Status int

const (
	StatusBelow Status = iota
	StatusExactly
	StatusAbove
)

func (s Status) String() string {
	switch s {
	case StatusAbove:
		return "Acima de"
	case StatusExactly:
		return "Exatamente"
	default:
		return "Abaixo de"
	}
}

// WorkSummary is derived from a day's events and never persisted.
type WorkSummary struct {
	Worked            time.Duration `json:"worked"`
	Balance           time.Duration `json:"balance"`
	Open              bool          `json:"open"`
	OpenSince         *time.Time    `json:"openSince,omitempty"`
	ProjectedCheckout *time.Time    `json:"projectedCheckout,omitempty"`
}

func (s WorkSummary) Status() Status {
	switch {
	case s.Worked > TargetDuration:
		return StatusAbove
	case s.Worked < TargetDuration:
		return StatusBelow
	default:
		return StatusExactly
	}
}

// ComputeWorkSummary walks the structural events in chronological order,
// pairing entries with exits. It is total over any input.
func ComputeWorkSummary(events []model.PunchEvent, mode Mode, now time.Time) WorkSummary {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b model.PunchEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	sorted = utils.Filter(sorted, func(e model.PunchEvent) bool { return e.Label.IsStructural() })

	var worked time.Duration
	var openSince *time.Time
	for _, e := range sorted {
		switch {
		case e.Label.IsEntry():
			// a second entry without an exit replaces the open marker
			openSince = utils.Ptr(e.Timestamp)
		case e.Label.IsExit() && openSince != nil:
			worked += e.Timestamp.Sub(*openSince)
			openSince = nil
		}
	}

	summary := WorkSummary{}
	if openSince != nil {
		summary.Open = true
		summary.OpenSince = openSince
		if mode == ModeLive {
			worked += now.Sub(*openSince)
			remaining := max(0, TargetDuration-worked)
			summary.ProjectedCheckout = utils.Ptr(now.Add(remaining))
		}
	}
	summary.Worked = worked
	summary.Balance = worked - TargetDuration
	return summary
}

// FormatHoursMinutes renders a duration as HH:MM, floored to the minute.
// Negative durations are rendered by magnitude.
func FormatHoursMinutes(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatBalance renders a signed balance as +HH:MM or -HH:MM.
func FormatBalance(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
	}
	return sign + FormatHoursMinutes(d)
}

// CheckoutHint is the suggestion shown while a period is open.
func CheckoutHint(s WorkSummary) string {
	if !s.Open || s.ProjectedCheckout == nil {
		return ""
	}
	if s.Worked >= TargetDuration {
		return "Já completou as 8h de trabalho"
	}
	return fmt.Sprintf("Sugestão de saída: %s (8h completas)", s.ProjectedCheckout.Format("15:04"))
}
