package common

import (
	"encoding/json"
	"fmt"

	"ponto.app/ponto/model"
)

// DateOnly is a day key in request bodies, validated on decode.
type DateOnly struct {
	model.DayKey
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	// b is a quoted string like `"2025-10-29"`
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	key, err := model.ParseDayKey(s)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	d.DayKey = key
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d.DayKey))
}
