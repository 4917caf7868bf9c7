package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 2*time.Hour, Remaining(now.Add(2*time.Hour), now))
	assert.Equal(t, time.Duration(0), Remaining(now.Add(-time.Minute), now))
	assert.Equal(t, time.Duration(0), Remaining(now, now))
	assert.Equal(t, time.Duration(0), Remaining(time.Time{}, now))
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0 horas 0 minutos"},
		{59 * time.Second, "0 horas 0 minutos"},
		{90 * time.Minute, "1 horas 30 minutos"},
		{2*time.Hour + 59*time.Minute + 59*time.Second, "2 horas 59 minutos"},
		{26 * time.Hour, "26 horas 0 minutos"},
		{-time.Hour, "0 horas 0 minutos"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRemaining(tt.d), tt.d.String())
	}
}

func TestFormatRemainingFor(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, NoEndLabel, FormatRemainingFor(time.Time{}, now))
	assert.Equal(t, "0 horas 0 minutos", FormatRemainingFor(now.Add(-time.Hour), now))
	assert.Equal(t, "0 horas 45 minutos", FormatRemainingFor(now.Add(45*time.Minute), now))
}

func TestRemaining_NeverIncreases(t *testing.T) {
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	prev := Remaining(end, start.Add(-time.Hour))
	for now := start.Add(-time.Hour); now.Before(end.Add(time.Hour)); now = now.Add(37 * time.Second) {
		got := Remaining(end, now)
		assert.LessOrEqual(t, got, prev, now.String())
		assert.GreaterOrEqual(t, got, time.Duration(0), now.String())
		prev = got
	}
	assert.Equal(t, time.Duration(0), prev)
}
