package geocoding

import (
	"context"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Resolver is an interface that defines a method for reverse geocoding coordinates.
// The Reverse method takes a context and a pair of coordinates as input,
// and returns the structured address found at that point and an error if any occurs.
// Rate limiting and retries towards the external service are the resolver's concern.
type Resolver interface {
	Reverse(ctx context.Context, coords models.Coordinates) (*models.Address, error)
}
