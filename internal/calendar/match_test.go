package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfcart-dashboard/internal/domain"
)

func TestRentalsOnDay(t *testing.T) {
	mexico, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	rentals := []domain.Rental{
		{ID: 1, Start: time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)},
		{ID: 2, Start: time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC)}, // May 1, 21:00 in Mexico City
		{ID: 3, Start: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 4, Start: time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 5}, // unparsed start
	}

	t.Run("Local day keeps order", func(t *testing.T) {
		got := RentalsOnDay(rentals, 2024, time.May, 1, mexico)
		require.Len(t, got, 3)
		assert.Equal(t, []int{1, 2, 3}, ids(got))
	})

	t.Run("UTC day", func(t *testing.T) {
		assert.Equal(t, []int{1, 3}, ids(RentalsOnDay(rentals, 2024, time.May, 1, time.UTC)))
		assert.Equal(t, []int{2}, ids(RentalsOnDay(rentals, 2024, time.May, 2, time.UTC)))
	})

	t.Run("Zoneless backend timestamps", func(t *testing.T) {
		decoded, err := domain.DecodeRentals([]byte(`[
			{"rentaID":7,"horaInicio":"2024-01-10T02:00:00","horaFinal":"2024-01-10T04:00:00"},
			{"rentaID":8,"horaInicio":"2024-01-09T23:30:00.000","horaFinal":null}
		]`), mexico)
		require.NoError(t, err)

		assert.Equal(t, []int{7}, ids(RentalsOnDay(decoded, 2024, time.January, 10, mexico)))
		assert.Equal(t, []int{8}, ids(RentalsOnDay(decoded, 2024, time.January, 9, mexico)))
	})

	t.Run("Empty day", func(t *testing.T) {
		assert.Empty(t, RentalsOnDay(rentals, 2024, time.June, 1, mexico))
		assert.Empty(t, RentalsOnDay(nil, 2024, time.May, 1, mexico))
	})

	t.Run("Equivalent to per-day grouping", func(t *testing.T) {
		byDay := GroupByDay(rentals, 2024, time.May, mexico)
		for day := 1; day <= 31; day++ {
			assert.Equal(t, ids(RentalsOnDay(rentals, 2024, time.May, day, mexico)), ids(byDay[day]), "day %d", day)
		}
	})
}

func ids(rentals []domain.Rental) []int {
	var out []int
	for _, r := range rentals {
		out = append(out, r.ID)
	}
	return out
}
