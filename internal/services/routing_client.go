package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	mem "corso/pkg/memcache"
)

// RoutingProvider returns road-network travel legs. Implementations may be
// transiently unavailable; callers decide the retry/fallback policy.
type RoutingProvider interface {
	Travel(ctx context.Context, origin, destination GeoPoint, mode TransportMode) (TravelLeg, error)
}

var mapboxProfiles = map[TransportMode]string{
	ModeWalking: "walking",
	ModeDriving: "driving",
}

// MapboxRoutingClient resolves legs through the Mapbox Directions Matrix API
// (distance and duration annotations), with a TTL cache per directed pair.
type MapboxRoutingClient struct {
	HTTP        *http.Client
	AccessToken string
	Cache       mem.LegCache
	DefaultTTL  time.Duration
}

func NewMapboxRoutingClient(accessToken string, cache mem.LegCache) *MapboxRoutingClient {
	return &MapboxRoutingClient{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		AccessToken: accessToken,
		Cache:       cache,
		DefaultTTL:  7 * 24 * time.Hour,
	}
}

// cacheCoord rounds to ~1m so the same place always hits the same cache key.
func cacheCoord(p GeoPoint) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}

func (c *MapboxRoutingClient) Travel(ctx context.Context, origin, destination GeoPoint, mode TransportMode) (TravelLeg, error) {
	profile, ok := mapboxProfiles[mode]
	if !ok {
		return TravelLeg{}, fmt.Errorf("mapbox: unsupported profile for mode %q", mode)
	}
	if c.AccessToken == "" {
		return TravelLeg{}, fmt.Errorf("mapbox: access token is empty")
	}

	key := mem.LegKey{Mode: string(mode), From: cacheCoord(origin), To: cacheCoord(destination)}
	if c.Cache != nil {
		if v, hit := c.Cache.Get(key); hit {
			return TravelLeg{DistanceKm: v.DistanceKm, DurationMinutes: v.DurationMinutes}, nil
		}
	}

	coordStr := fmt.Sprintf("%f,%f;%f,%f", origin.Lng, origin.Lat, destination.Lng, destination.Lat)
	u := url.URL{
		Scheme: "https",
		Host:   "api.mapbox.com",
		Path:   fmt.Sprintf("/directions-matrix/v1/mapbox/%s/%s", profile, coordStr),
	}
	q := url.Values{}
	q.Set("annotations", "distance,duration")
	q.Set("sources", "0")
	q.Set("destinations", "1")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return TravelLeg{}, fmt.Errorf("mapbox request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return TravelLeg{}, fmt.Errorf("mapbox matrix http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return TravelLeg{}, fmt.Errorf("mapbox matrix bad status: %s", resp.Status)
	}

	var payload struct {
		Distances [][]*float64 `json:"distances"`
		Durations [][]*float64 `json:"durations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return TravelLeg{}, fmt.Errorf("mapbox decode: %w", err)
	}
	if len(payload.Distances) == 0 || len(payload.Distances[0]) == 0 ||
		payload.Distances[0][0] == nil ||
		len(payload.Durations) == 0 || len(payload.Durations[0]) == 0 ||
		payload.Durations[0][0] == nil {
		return TravelLeg{}, fmt.Errorf("mapbox matrix: no route between points")
	}

	leg := TravelLeg{
		DistanceKm:      *payload.Distances[0][0] / 1000,
		DurationMinutes: int(math.Round(*payload.Durations[0][0] / 60)),
	}
	if leg.DistanceKm > 0 && leg.DurationMinutes < 1 {
		leg.DurationMinutes = 1
	}

	if c.Cache != nil {
		c.Cache.Set(key, mem.LegValue{DistanceKm: leg.DistanceKm, DurationMinutes: leg.DurationMinutes}, c.DefaultTTL)
	}
	return leg, nil
}
