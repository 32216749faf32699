package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dayKeyLayout = "2006-01-02"

var ErrInvalidDayKey = errors.New("invalid day key")

// PunchEvent is one recorded clock action. JSON field names match the
// format the browser version kept in local storage.
type PunchEvent struct {
	ID          string    `json:"id,omitempty"`
	Timestamp   time.Time `json:"dataHora"`
	Label       Label     `json:"tipo"`
	Description string    `json:"descricao"`
}

// NewPunchEvent creates an event with a fresh id. An empty description
// falls back to the label's display name.
func NewPunchEvent(ts time.Time, label Label, description string) PunchEvent {
	if description == "" {
		description = label.String()
	}
	return PunchEvent{
		ID:          uuid.NewString(),
		Timestamp:   ts,
		Label:       label,
		Description: description,
	}
}

// DayKey identifies one calendar day bucket, formatted YYYY-MM-DD.
type DayKey string

// DayKeyOf returns the key of the day t falls on in t's own location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDayKey, s, err)
	}
	// reject non canonical forms
	if t.Format(dayKeyLayout) != s {
		return "", fmt.Errorf("%w %q", ErrInvalidDayKey, s)
	}
	return DayKey(s), nil
}

func (d DayKey) String() string {
	return string(d)
}

// Date returns midnight of the day in loc.
func (d DayKey) Date(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayKeyLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDayKey, d, err)
	}
	return t, nil
}

// Display formats the key as DD/MM/YYYY.
func (d DayKey) Display() string {
	t, err := time.Parse(dayKeyLayout, string(d))
	if err != nil {
		return string(d)
	}
	return t.Format("02/01/2006")
}
