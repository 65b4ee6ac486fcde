//go:build wireinject
// +build wireinject

package di

import (
	"PriceLens/pkg/config"
	"PriceLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Caching
		ProvideCache,
		ProvideCacheStore,

		// Backend source
		ProvideBackendSource,

		// Use cases
		ProvideGeometry,
		ProvideAggregator,
		ProvideRefresher,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
