package supply_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/supply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firstDay = `Date/Time:   2018-01-01 00:00:01
Latitude:    -30.04982864
Longitude:   -51.20150245
Distance:    2.2959 km
Speed:       0 km/h

Latitude:    -30.06761588
Longitude:   -51.23976111
`

const secondDay = `Latitude:    -30.05596474
Latitude:    -30.05596475
Longitude:   -51.17286827
Longitude:   -51.99999999
`

func TestParse(t *testing.T) {
	t.Run("pairs in file order", func(t *testing.T) {
		coords, err := supply.Parse(strings.NewReader(firstDay))

		require.NoError(t, err)
		assert.Equal(t, []models.Coordinates{
			{Latitude: "-30.04982864", Longitude: "-51.20150245"},
			{Latitude: "-30.06761588", Longitude: "-51.23976111"},
		}, coords)
	})

	t.Run("orphan latitude is replaced and orphan longitude dropped", func(t *testing.T) {
		coords, err := supply.Parse(strings.NewReader(secondDay))

		require.NoError(t, err)
		assert.Equal(t, []models.Coordinates{
			{Latitude: "-30.05596475", Longitude: "-51.17286827"},
		}, coords)
	})

	t.Run("label without a decimal is ignored", func(t *testing.T) {
		coords, err := supply.Parse(strings.NewReader("Latitude: unknown\nLongitude: -51.1\n"))

		require.NoError(t, err)
		assert.Empty(t, coords)
	})

	t.Run("empty input", func(t *testing.T) {
		coords, err := supply.Parse(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, coords)
	})
}

func TestTextFiles_FetchAll(t *testing.T) {
	defer filet.CleanUp(t)
	ctx := t.Context()

	dir := filet.TmpDir(t, "")
	first := filet.TmpFile(t, dir, firstDay)
	second := filet.TmpFile(t, dir, secondDay)

	t.Run("files are concatenated in call order", func(t *testing.T) {
		coords, err := supply.TextFiles{Paths: []string{second.Name(), first.Name()}}.FetchAll(ctx)

		require.NoError(t, err)
		require.Len(t, coords, 3)
		assert.Equal(t, "-30.05596475", coords[0].Latitude)
		assert.Equal(t, "-30.04982864", coords[1].Latitude)
		assert.Equal(t, "-30.06761588", coords[2].Latitude)
	})

	t.Run("no input files", func(t *testing.T) {
		coords, err := supply.TextFiles{}.FetchAll(ctx)

		require.Nil(t, coords)
		require.ErrorIs(t, err, supply.ErrNoInput)
	})

	t.Run("missing file", func(t *testing.T) {
		coords, err := supply.TextFiles{Paths: []string{dir + "/missing.txt"}}.FetchAll(ctx)

		require.Nil(t, coords)
		require.ErrorContains(t, err, "failed to open input file")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := supply.TextFiles{Paths: []string{first.Name()}}.FetchAll(cctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
