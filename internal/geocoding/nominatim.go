package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the reverse endpoint of the public Nominatim instance.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/reverse"

// NominatimProvider implements the Resolver interface using OpenStreetMap's Nominatim API.
// This is a free service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client   HTTPClient    // HTTP client for making requests
	baseURL  string        // Base URL for the Nominatim API
	language string        // Accept-Language sent with every request
	log      *slog.Logger  // Logger for logging operations
	limiter  *rate.Limiter // Shared by every requester using this provider
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from the Nominatim reverse API.
type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		Road          string `json:"road"`
		HouseNumber   string `json:"house_number"`
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		Postcode      string `json:"postcode"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"address"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimNoResult = errors.New("nominatim API found no address for coordinates")
)

const nominatimUserAgent = "Meridian-Reverse-Geocoder/1.0 (https://github.com/UnknownOlympus/meridian)"

// NewNominatimProvider creates a new Nominatim reverse geocoding provider
// against the public endpoint, limited to one request per second.
func NewNominatimProvider(language string, log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		rate.NewLimiter(rate.Every(time.Second), 1),
		language,
		log,
	)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client
// and limiter. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(
	client HTTPClient,
	limiter *rate.Limiter,
	language string,
	log *slog.Logger,
) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   NominatimBaseURL,
		language:  language,
		log:       log,
		limiter:   limiter,
		userAgent: nominatimUserAgent,
	}
}

// Reverse converts coordinates to an address using the Nominatim reverse API.
// The coordinates are sent exactly as read from the input.
func (np *NominatimProvider) Reverse(ctx context.Context, coords models.Coordinates) (*models.Address, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim", "coordinates", coords.String())

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("lat", coords.Latitude)
	query.Set("lon", coords.Longitude)
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("zoom", "18") // building level
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", np.userAgent)
	if np.language != "" {
		req.Header.Set("Accept-Language", np.language)
	}

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute reverse geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var result nominatimResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrNominatimNoResult, result.Error)
	}

	src := result.Address
	addr := &models.Address{
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		Road:        src.Road,
		HouseNumber: src.HouseNumber,
		Suburb:      firstNonEmpty(src.Suburb, src.Neighbourhood),
		City:        firstNonEmpty(src.City, src.Town, src.Village),
		Postcode:    src.Postcode,
		State:       src.State,
		Country:     src.Country,
	}
	addr.Normalize()

	return addr, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
