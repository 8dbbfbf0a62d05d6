package models

import (
	"fmt"
	"strconv"
)

// Coordinates represents a geographical point read from an input data file.
// Both values are kept as the decimal text found in the source so that no
// rounding happens before they reach a resolver.
type Coordinates struct {
	Latitude  string // Latitude of the geographical point, decimal degrees.
	Longitude string // Longitude of the geographical point, decimal degrees.
}

// Float returns the coordinates parsed as float64 values.
func (c Coordinates) Float() (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Latitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse latitude %q: %w", c.Latitude, err)
	}

	lon, err := strconv.ParseFloat(c.Longitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse longitude %q: %w", c.Longitude, err)
	}

	return lat, lon, nil
}

func (c Coordinates) String() string {
	return c.Latitude + "," + c.Longitude
}
