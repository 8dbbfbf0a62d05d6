package service_test

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

// makeCoords returns n coordinates whose latitude is their input index.
func makeCoords(n int) []models.Coordinates {
	coords := make([]models.Coordinates, n)
	for i := range coords {
		coords[i] = models.Coordinates{Latitude: strconv.Itoa(i), Longitude: "-51.2"}
	}

	return coords
}

func indexOf(addr models.Address) int {
	idx, _ := strconv.Atoi(addr.Latitude)
	return idx
}

// stubResolver resolves deterministically, optionally failing on chosen indices
// and sleeping a random short time to shuffle completion order.
type stubResolver struct {
	failAt   map[int]error
	maxDelay time.Duration
	calls    atomic.Int64
	onCall   func()
}

func (s *stubResolver) Reverse(ctx context.Context, coords models.Coordinates) (*models.Address, error) {
	s.calls.Add(1)
	if s.onCall != nil {
		s.onCall()
	}

	if s.maxDelay > 0 {
		time.Sleep(rand.N(s.maxDelay))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, _ := strconv.Atoi(coords.Latitude)
	if err, ok := s.failAt[idx]; ok {
		return nil, err
	}

	addr := models.NewAddress(coords)
	addr.Road = "Rua " + coords.Latitude
	return addr, nil
}

// stubSink records appended addresses; it fails the call numbered failOn (1-based).
type stubSink struct {
	mu       sync.Mutex
	appended []models.Address
	calls    int
	failOn   int
	delay    time.Duration
}

func (s *stubSink) Append(_ context.Context, addr models.Address) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.failOn > 0 && s.calls == s.failOn {
		return errSinkDown
	}
	s.appended = append(s.appended, addr)

	return nil
}

func (s *stubSink) records() []models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Address(nil), s.appended...)
}
