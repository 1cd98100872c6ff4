//go:build wireinject
// +build wireinject

package di

import (
	"SectorScope/pkg/config"
	"SectorScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideRegistry,
		ProvideLexicon,

		// External provider and parsers
		ProvideMarketData,
		ProvideNewsSource,
		ProvideAggregator,

		// Use case
		ProvideForecast,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
