package routing_fx

import (
	"go.uber.org/fx"

	"corso/internal/infra"
	"corso/internal/services"
	mem "corso/pkg/memcache"
)

var Module = fx.Provide(provideEstimator)

// provideEstimator wires the travel estimator: Mapbox-backed with bounded
// retries when a token is configured, pure haversine otherwise.
func provideEstimator(cfg infra.Config) services.TravelEstimator {
	if cfg.MapboxAccessToken == "" {
		return services.HaversineEstimator{}
	}
	client := services.NewMapboxRoutingClient(cfg.MapboxAccessToken, mem.NewLegCache())
	return services.NewProviderEstimator(client, cfg.RoutingRetries)
}
