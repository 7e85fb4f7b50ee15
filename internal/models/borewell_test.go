package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBorewellJSONIncludesLocation(t *testing.T) {
	b := Borewell{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Latitude:   "12.9716",
		Longitude:  "77.5946",
		WellType:   WellTypeDrilled,
	}

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "12.9716", got["latitude"])
	require.Equal(t, "drilled-well", got["wellType"])
	require.Equal(t, map[string]any{"latitude": "12.9716", "longitude": "77.5946"}, got["location"])
	require.NotContains(t, got, "customer")
}

func TestCustomerJSONHidesSecrets(t *testing.T) {
	c := Customer{Name: "Asha", Email: "asha@example.com", PasswordHash: "$2a$12$hash", Password: "secret1"}

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hash")
	require.NotContains(t, string(raw), "secret1")
	require.Contains(t, string(raw), `"phoneNumber"`)
}

func TestNewMapEntries(t *testing.T) {
	owner := &Customer{Name: "Asha", Address: "Hebbal", PhoneNumber: "+919876543210", Email: "asha@example.com"}
	entries := NewMapEntries([]Borewell{
		{Latitude: "12.9716", Longitude: "77.5946", Customer: owner},
		{Latitude: "13.0", Longitude: "77.6"},
	})

	require.Len(t, entries, 2)
	require.Equal(t, MapEntry{
		Name: "Asha", Address: "Hebbal", Phone: "+919876543210", Email: "asha@example.com",
		Latitude: "12.9716", Longitude: "77.5946",
	}, entries[0])
	require.Equal(t, MapEntry{Latitude: "13.0", Longitude: "77.6"}, entries[1])
}
