package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", FormatDate(d))

	_, err = ParseDate("01/09/2026")
	assert.Error(t, err)

	_, err = ParseDate("2026-9-1")
	assert.Error(t, err)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name   string
		anchor string
		from   string
		to     string
	}{
		{"midweek", "2026-09-02", "2026-08-31", "2026-09-06"},
		{"monday is its own start", "2026-08-31", "2026-08-31", "2026-09-06"},
		{"sunday belongs to the preceding week", "2026-09-06", "2026-08-31", "2026-09-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor, err := ParseDate(tt.anchor)
			require.NoError(t, err)

			from, to := WeekBounds(anchor)
			assert.Equal(t, tt.from, FormatDate(from))
			assert.Equal(t, tt.to, FormatDate(to))
			assert.Equal(t, time.Monday, from.Weekday())
			assert.Equal(t, time.Sunday, to.Weekday())
		})
	}
}

func TestMonthBounds(t *testing.T) {
	anchor, err := ParseDate("2026-02-15")
	require.NoError(t, err)

	from, to := MonthBounds(anchor)
	assert.Equal(t, "2026-02-01", FormatDate(from))
	assert.Equal(t, "2026-02-28", FormatDate(to))

	anchor, err = ParseDate("2024-02-10")
	require.NoError(t, err)
	_, to = MonthBounds(anchor)
	assert.Equal(t, "2024-02-29", FormatDate(to))
}

func TestGenerateEmployeeID(t *testing.T) {
	id, err := GenerateEmployeeID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "EMP-"))
	assert.Len(t, id, len("EMP-")+6)
}
