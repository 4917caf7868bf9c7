package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRental_UnmarshalJSON(t *testing.T) {
	t.Run("Backend payload", func(t *testing.T) {
		payload := `{"rentaID":7,"clienteFK":2,"carritoFK":3,"vendedorFK":4,
			"horaInicio":"2024-05-01T10:00:00Z","horaFinal":"2024-05-01T12:30:00.000",
			"status":"En progreso","total":2.5}`

		var r Rental
		require.NoError(t, json.Unmarshal([]byte(payload), &r))
		assert.Equal(t, 7, r.ID)
		assert.Equal(t, 2, r.ClientID)
		assert.Equal(t, 3, r.CartID)
		assert.Equal(t, 4, r.VendorID)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), r.End)
		assert.Equal(t, StatusInProgress, r.Status)
		assert.Equal(t, 2.5, r.Total)
		assert.True(t, r.HasValidWindow())
	})

	t.Run("Bad instants become zero", func(t *testing.T) {
		var r Rental
		require.NoError(t, json.Unmarshal([]byte(`{"rentaID":1,"horaInicio":"mañana","horaFinal":null}`), &r))
		assert.True(t, r.Start.IsZero())
		assert.True(t, r.End.IsZero())
		assert.False(t, r.HasValidWindow())
	})

	t.Run("Wrong types still fail", func(t *testing.T) {
		var r Rental
		assert.Error(t, json.Unmarshal([]byte(`{"rentaID":"x"}`), &r))
	})
}

func TestRental_MarshalJSON(t *testing.T) {
	r := Rental{ClientID: 1, CartID: 2, VendorID: 3, Start: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Status: StatusInProgress, Total: 1}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clienteFK":1,"carritoFK":2,"vendedorFK":3,"horaInicio":"2024-05-01T10:00:00Z","horaFinal":null,"status":"En progreso","total":1}`, string(data))
}

func TestParseInstant(t *testing.T) {
	for _, s := range []string{"2024-02-29T23:59:59Z", "2024-02-29T23:59:59.000", "2024-02-29T23:59:59", "2024-02-29 23:59:59", "2024-02-29T17:59:59-06:00"} {
		_, err := ParseInstant(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"", "   ", "29/02/2024", "not a date"} {
		_, err := ParseInstant(s)
		assert.Error(t, err, s)
	}
}

func TestParseInstantIn(t *testing.T) {
	mexico := time.FixedZone("CST", -6*3600)

	got, err := ParseInstantIn("2024-01-10T02:00:00", mexico)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)))

	got, err = ParseInstantIn("2024-01-10T02:00:00Z", mexico)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)))

	got, err = ParseInstantIn("2024-01-10 02:00:00", nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)))
}

func TestDecodeRentals(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	rentals, err := DecodeRentals([]byte(`[{"rentaID":1,"horaInicio":"2024-01-10T02:00:00","horaFinal":"x"}]`), loc)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, 10, rentals[0].Start.In(loc).Day())
	assert.True(t, rentals[0].End.IsZero())

	_, err = DecodeRentals([]byte(`{"rentaID":1}`), loc)
	assert.Error(t, err)
}

func TestDraftRef(t *testing.T) {
	id := uuid.New()
	p := Pending(id)
	assert.True(t, p.IsPending())
	assert.False(t, p.IsConfirmed())
	assert.Equal(t, "pending:"+id.String(), p.String())

	c := Confirmed(42)
	assert.True(t, c.IsConfirmed())
	assert.False(t, c.IsPending())
	assert.Equal(t, "confirmed:42", c.String())

	assert.Equal(t, "invalid", DraftRef{}.String())
}
