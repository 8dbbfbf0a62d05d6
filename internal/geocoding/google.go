package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/UnknownOlympus/meridian/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps reverse geocoding service.
type GoogleProvider struct {
	client   GoogleAPIClient // client is the Google Maps API client
	language string          // language requested for address components
	log      *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider wraps an already configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, language string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, language: language, log: log}
}

// Reverse looks up the address of coords with the Google Maps Geocoding API and
// maps the first result's address components onto a models.Address.
func (gp *GoogleProvider) Reverse(ctx context.Context, coords models.Coordinates) (*models.Address, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "coordinates", coords.String())

	lat, lon, err := coords.Float()
	if err != nil {
		return nil, err
	}

	req := maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: lat, Lng: lon},
		Language: gp.language,
	}
	results, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse geocode coordinates: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	return addressFromComponents(coords, results[0].AddressComponents), nil
}

// addressFromComponents picks the fields of a Google result by component type.
// Later components of the same type win.
func addressFromComponents(coords models.Coordinates, components []maps.AddressComponent) *models.Address {
	addr := models.NewAddress(coords)

	for _, component := range components {
		has := func(kind string) bool { return slices.Contains(component.Types, kind) }

		if has("route") {
			addr.Road = component.ShortName
		}
		if has("street_number") {
			addr.HouseNumber = component.ShortName
		}
		if has("sublocality") {
			addr.Suburb = component.ShortName
		}
		if has("administrative_area_level_2") {
			addr.City = component.ShortName
		}
		if has("postal_code") {
			addr.Postcode = component.ShortName
		}
		if has("administrative_area_level_1") {
			addr.State = component.ShortName
		}
		if has("country") {
			addr.Country = component.LongName
		}
	}

	addr.Normalize()

	return addr
}
