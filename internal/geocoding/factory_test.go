package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name     string
		config   geocoding.ProviderConfig
		wantType geocoding.Resolver
		wantErr  string
	}{
		{
			name: "google with key and shared rate limit",
			config: geocoding.ProviderConfig{
				Type:      geocoding.ProviderTypeGoogle,
				APIKey:    "test-api-key",
				RateLimit: 50,
				Language:  "pt-BR",
			},
			wantType: &geocoding.GoogleProvider{},
		},
		{
			name:     "google without rate limit",
			config:   geocoding.ProviderConfig{Type: geocoding.ProviderTypeGoogle, APIKey: "test-api-key"},
			wantType: &geocoding.GoogleProvider{},
		},
		{
			name:    "google requires a key",
			config:  geocoding.ProviderConfig{Type: geocoding.ProviderTypeGoogle},
			wantErr: "API key is required for Google provider",
		},
		{
			name:     "nominatim needs no key and ignores the configured limit",
			config:   geocoding.ProviderConfig{Type: geocoding.ProviderTypeNominatim, RateLimit: 100},
			wantType: &geocoding.NominatimProvider{},
		},
		{
			name:     "visicom falls back to the default limit",
			config:   geocoding.ProviderConfig{Type: geocoding.ProviderTypeVisicom, APIKey: "test-api-key"},
			wantType: &geocoding.VisicomProvider{},
		},
		{
			name:    "visicom requires a key",
			config:  geocoding.ProviderConfig{Type: geocoding.ProviderTypeVisicom, RateLimit: 5},
			wantErr: "API key is required for Visicom provider",
		},
		{
			name:    "unknown type",
			config:  geocoding.ProviderConfig{Type: geocoding.ProviderType("here")},
			wantErr: "unsupported provider type: here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Logger = logger

			provider, err := geocoding.NewProvider(tt.config)

			if tt.wantErr != "" {
				require.Nil(t, provider)
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.wantType, provider)
		})
	}
}
