package geocoding_test

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestVisicomProvider_Reverse(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)
	coords := models.Coordinates{Latitude: "50.45466", Longitude: "30.5238"}

	t.Run("successful reverse geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), geocoding.VisicomBaseURL)
				assert.Equal(t, "30.5238,50.45466", req.URL.Query().Get("near"))
				assert.Equal(t, "adr_address", req.URL.Query().Get("categories"))
				assert.Equal(t, apiKey, req.URL.Query().Get("key"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				return respond(http.StatusOK, `{"properties":{"street":"вул. Хрещатик","name":"22",`+
					`"zone":"Шевченківський район","settlement":"Київ","postal_code":"01001",`+
					`"level1":"Київ","country":"Україна"}}`)(req)
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		addr, err := provider.Reverse(ctx, coords)

		require.NoError(t, err)
		assert.Equal(t, &models.Address{
			Latitude:    "50.45466",
			Longitude:   "30.5238",
			Road:        "вул. Хрещатик",
			HouseNumber: "22",
			Suburb:      "Шевченківський район",
			City:        "Київ",
			Postcode:    "01001",
			State:       "Київ",
			Country:     "Україна",
		}, addr)
	})

	t.Run("empty response", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `{}`)}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		addr, err := provider.Reverse(ctx, coords)

		require.Nil(t, addr)
		require.ErrorIs(t, err, geocoding.ErrVisicomEmptyResponse)
	})

	t.Run("unauthorized", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusForbidden, ``)}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		addr, err := provider.Reverse(ctx, coords)

		require.Nil(t, addr)
		require.ErrorIs(t, err, geocoding.ErrVisicomUnauthorized)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusInternalServerError, `boom`)}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		addr, err := provider.Reverse(ctx, coords)

		require.Nil(t, addr)
		require.ErrorContains(t, err, "visicom API returned status 500: boom")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `{`)}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		addr, err := provider.Reverse(ctx, coords)

		require.Nil(t, addr)
		require.ErrorContains(t, err, "failed to decode visicom response")
	})
}
