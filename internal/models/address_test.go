package models_test

import (
	"testing"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	addr := models.NewAddress(models.Coordinates{Latitude: "-30.04982864", Longitude: "-51.20150245"})

	assert.Equal(t, "-30.04982864", addr.Latitude)
	assert.Equal(t, "-51.20150245", addr.Longitude)
	for _, v := range addr.Values()[2:] {
		assert.Equal(t, models.NotProvided, v)
	}
}

func TestAddress_Normalize(t *testing.T) {
	addr := &models.Address{Latitude: "1.5", Longitude: "2.5", Road: "Rua Monsenhor Veras"}

	addr.Normalize()

	assert.Equal(t, "Rua Monsenhor Veras", addr.Road)
	assert.Equal(t, models.NotProvided, addr.HouseNumber)
	assert.Equal(t, models.NotProvided, addr.Country)
	assert.Len(t, addr.Values(), 9)
}

func TestCoordinates_Float(t *testing.T) {
	t.Run("valid decimals", func(t *testing.T) {
		lat, lon, err := models.Coordinates{Latitude: "-30.06761588", Longitude: "-51.23976111"}.Float()

		require.NoError(t, err)
		assert.InDelta(t, -30.06761588, lat, 1e-9)
		assert.InDelta(t, -51.23976111, lon, 1e-9)
	})

	t.Run("invalid latitude", func(t *testing.T) {
		_, _, err := models.Coordinates{Latitude: "north", Longitude: "1"}.Float()

		require.ErrorContains(t, err, "failed to parse latitude")
	})

	t.Run("invalid longitude", func(t *testing.T) {
		_, _, err := models.Coordinates{Latitude: "1", Longitude: "east"}.Float()

		require.ErrorContains(t, err, "failed to parse longitude")
	})
}
