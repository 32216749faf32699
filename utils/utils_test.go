package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	want := time.Date(2026, 10, 18, 8, 30, 0, 0, loc)

	tests := []struct {
		name  string
		input string
	}{
		{"datetime-local", "2026-10-18T08:30"},
		{"with seconds", "2026-10-18 08:30:00"},
		{"display format", "18/10/2026, 08:30:00"},
		{"rfc3339", "2026-10-18T11:30:00Z"},
		{"surrounding spaces", "  18/10/2026 08:30  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalTime(tt.input, loc)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}

	for _, bad := range []string{"", "ontem", "2026-10-18T25:00"} {
		_, err := ParseLocalTime(bad, loc)
		assert.Error(t, err, bad)
	}
}

func TestSliceHelpers(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{2, 4}, Filter(nums, func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, []int{}, Filter(nums, func(n int) bool { return n > 9 }))
	assert.Equal(t, []int{2, 4}, Map(nums[:2], func(n int) int { return n * 2 }))
	assert.Equal(t, 2, FindLast(nums, func(n int) bool { return n < 4 }))
	assert.Equal(t, -1, FindLast(nums, func(n int) bool { return n > 9 }))
	assert.Equal(t, 7, *Ptr(7))
}
