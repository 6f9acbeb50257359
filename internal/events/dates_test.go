package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRDateWithTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	got, err := ParseBRDate("25/12/2025 14:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 25, 14, 30, 0, 0, loc), got)
}

func TestParseBRDateDateOnly(t *testing.T) {
	got, err := ParseBRDate("01/02/2025", time.UTC)
	require.NoError(t, err)
	// Day first, month second.
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseBRDateRFC3339Fallback(t *testing.T) {
	got, err := ParseBRDate("2025-06-15T09:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), got)
}

func TestParseBRDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "amanhã", "31/02", "2025-06-15", "12/31/2025"} {
		_, err := ParseBRDate(input, time.UTC)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatBRDate(t *testing.T) {
	ts := time.Date(2025, 12, 25, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "25/12/2025 14:30", FormatBRDate(ts, false))
	assert.Equal(t, "25/12/2025", FormatBRDate(ts, true))
	assert.Equal(t, "", FormatBRDate(time.Time{}, false))
}
