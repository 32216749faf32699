package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in       string
		expected Label
	}{
		{"Primeira Entrada", FirstIn},
		{"Primeira Saída", FirstOut},
		{"segunda entrada", SecondIn},
		{"Segunda Saída", SecondOut},
		{"Outro", Other},
		{"first_out", FirstOut},
		{"Almoço", Other},
		{"", LabelUnset},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLabel(tt.in))
		})
	}
}

func TestLabelNext(t *testing.T) {
	assert.Equal(t, FirstOut, FirstIn.Next())
	assert.Equal(t, SecondIn, FirstOut.Next())
	assert.Equal(t, SecondOut, SecondIn.Next())
	assert.Equal(t, FirstIn, SecondOut.Next())
	assert.Equal(t, FirstIn, Other.Next())
	assert.Equal(t, FirstIn, LabelUnset.Next())
}

func TestPunchEventJSON(t *testing.T) {
	ts := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	ev := PunchEvent{ID: "abc", Timestamp: ts, Label: SecondIn, Description: "volta do almoço"}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","dataHora":"2026-10-18T08:00:00Z","tipo":"Segunda Entrada","descricao":"volta do almoço"}`, string(b))

	// records written by the browser version have no id
	var legacy PunchEvent
	require.NoError(t, json.Unmarshal([]byte(`{"dataHora":"2026-10-18T11:00:00.000Z","tipo":"Primeira Saída","descricao":"Primeira Saída"}`), &legacy))
	assert.Equal(t, FirstOut, legacy.Label)
	assert.Equal(t, time.Date(2026, 10, 18, 11, 0, 0, 0, time.UTC), legacy.Timestamp.UTC())
}

func TestNewPunchEventDefaultsDescription(t *testing.T) {
	ev := NewPunchEvent(time.Now(), FirstIn, "")
	assert.Equal(t, "Primeira Entrada", ev.Description)
	assert.NotEmpty(t, ev.ID)
}

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	// 01:30 UTC is still the previous day in BRT
	ts := time.Date(2026, 10, 18, 1, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, DayKey("2026-10-17"), DayKeyOf(ts))

	d, err := ParseDayKey("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, "18/10/2026", d.Display())

	date, err := d.Date(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, loc), date)

	for _, bad := range []string{"", "2026-13-01", "18/10/2026", "2026-1-2"} {
		_, err := ParseDayKey(bad)
		assert.ErrorIs(t, err, ErrInvalidDayKey, bad)
	}
}
