// Package supply reads the coordinates to resolve from data-point text files.
//
// A data-point file reports positions as pairs of lines:
//
//	Latitude:    -30.04982864
//	Longitude:   -51.20150245
//
// Other lines are ignored. A pair is produced only when a longitude line follows a
// latitude line; a latitude that is not followed by a longitude is replaced by the
// next one and a longitude without a preceding latitude is dropped.
package supply

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/models"
)

const (
	latitudeLabel  = "Latitude:"
	longitudeLabel = "Longitude:"
)

// ErrNoInput is returned when no input file is configured.
var ErrNoInput = errors.New("no input files configured")

// TextFiles supplies the coordinates of one or more data-point files, concatenated
// in the order of Paths.
type TextFiles struct {
	Paths []string
}

// FetchAll reads every file and returns their coordinates as one ordered sequence.
func (tf TextFiles) FetchAll(ctx context.Context) ([]models.Coordinates, error) {
	if len(tf.Paths) == 0 {
		return nil, ErrNoInput
	}

	var all []models.Coordinates
	for _, path := range tf.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		coords, err := readFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, coords...)
	}

	return all, nil
}

func readFile(path string) ([]models.Coordinates, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	coords, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return coords, nil
}

// Parse extracts coordinate pairs from a single data-point stream.
func Parse(r io.Reader) ([]models.Coordinates, error) {
	var (
		coords  []models.Coordinates
		lat     string
		haveLat bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch {
		case strings.Contains(fields[0], latitudeLabel):
			if value, ok := decimalAfterLabel(fields); ok {
				lat, haveLat = value, true
			}
		case strings.Contains(fields[0], longitudeLabel) && haveLat:
			if value, ok := decimalAfterLabel(fields); ok {
				coords = append(coords, models.Coordinates{Latitude: lat, Longitude: value})
				haveLat = false
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return coords, nil
}

// decimalAfterLabel returns the first decimal token after the label, as written.
func decimalAfterLabel(fields []string) (string, bool) {
	for _, field := range fields[1:] {
		if _, err := strconv.ParseFloat(field, 64); err == nil {
			return field, true
		}
	}

	return "", false
}
