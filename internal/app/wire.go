//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
)

// InitializeApp assembles the application: settings store, provider
// registry, orchestrator, ledger, transcript archive and converter.
func InitializeApp(logger *zap.Logger) (*App, error) {
	wire.Build(
		provideSettings,
		provideRegistry,
		provideOrchestrator,
		provideLedger,
		provideArchive,
		provideConverter,
		NewApp,
	)
	return &App{}, nil
}
