package services

import (
	"context"
	"log"
	"math"
	"time"

	"corso/pkg/utils"
)

type TransportMode string

const (
	ModeWalking TransportMode = "walking"
	ModeTransit TransportMode = "transit"
	ModeDriving TransportMode = "driving"
)

// Dense-urban average speeds, km/h.
var modeSpeedKmh = map[TransportMode]float64{
	ModeWalking: 4.5,
	ModeTransit: 20,
	ModeDriving: 30,
}

// ParseTransportMode validates a request mode string. Empty defaults to walking.
func ParseTransportMode(s string) (TransportMode, error) {
	if s == "" {
		return ModeWalking, nil
	}
	mode := TransportMode(s)
	if _, ok := modeSpeedKmh[mode]; !ok {
		return "", utils.ErrUnknownTransportMode
	}
	return mode, nil
}

type GeoPoint struct {
	Lat float64
	Lng float64
}

func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}

// TravelLeg is the cost of moving between two consecutive stops. Computed on
// demand, never persisted by the engine.
type TravelLeg struct {
	DistanceKm      float64
	DurationMinutes int
}

type TravelEstimator interface {
	Estimate(ctx context.Context, origin, destination GeoPoint, mode TransportMode) (TravelLeg, error)
}

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// durationMinutes converts a distance to whole minutes at the mode's speed,
// with a floor of 1 minute for any non-zero distance.
func durationMinutes(distanceKm float64, mode TransportMode) int {
	if distanceKm <= 0 {
		return 0
	}
	minutes := int(math.Round(distanceKm / modeSpeedKmh[mode] * 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// HaversineEstimator is the pure baseline estimator: straight-line distance
// at a mode-specific average speed.
type HaversineEstimator struct{}

func (HaversineEstimator) Estimate(ctx context.Context, origin, destination GeoPoint, mode TransportMode) (TravelLeg, error) {
	if !origin.Valid() || !destination.Valid() {
		return TravelLeg{}, utils.ErrInvalidCoordinate
	}
	if _, ok := modeSpeedKmh[mode]; !ok {
		return TravelLeg{}, utils.ErrUnknownTransportMode
	}

	distance := HaversineKm(origin, destination)
	return TravelLeg{
		DistanceKm:      distance,
		DurationMinutes: durationMinutes(distance, mode),
	}, nil
}

// ProviderEstimator asks an external routing provider for road-network legs,
// retrying a bounded number of times before falling back to the haversine
// baseline. Transit never hits the provider: Mapbox has no transit profile,
// so transit legs always use the baseline estimate.
type ProviderEstimator struct {
	provider RoutingProvider
	fallback HaversineEstimator
	attempts int
	backoff  time.Duration
}

func NewProviderEstimator(provider RoutingProvider, attempts int) *ProviderEstimator {
	if attempts < 1 {
		attempts = 1
	}
	return &ProviderEstimator{
		provider: provider,
		attempts: attempts,
		backoff:  200 * time.Millisecond,
	}
}

func (e *ProviderEstimator) Estimate(ctx context.Context, origin, destination GeoPoint, mode TransportMode) (TravelLeg, error) {
	if !origin.Valid() || !destination.Valid() {
		return TravelLeg{}, utils.ErrInvalidCoordinate
	}
	if e.provider == nil || mode == ModeTransit {
		return e.fallback.Estimate(ctx, origin, destination, mode)
	}

	var lastErr error
	for attempt := 0; attempt < e.attempts; attempt++ {
		leg, err := e.provider.Travel(ctx, origin, destination, mode)
		if err == nil {
			return leg, nil
		}
		lastErr = err
		if attempt == e.attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return TravelLeg{}, ctx.Err()
		case <-time.After(e.backoff):
		}
	}

	log.Printf("Routing provider unavailable after %d attempts, using haversine estimate: %v", e.attempts, lastErr)
	return e.fallback.Estimate(ctx, origin, destination, mode)
}
