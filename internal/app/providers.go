package app

import (
	"go.uber.org/zap"

	appconfig "voicescribe/internal/app/config"
	"voicescribe/internal/app/converter"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/recognition"
	"voicescribe/internal/app/repository"
	"voicescribe/internal/app/repository/sqlite"
	"voicescribe/internal/app/session"
	"voicescribe/internal/app/settings"
	"voicescribe/internal/config"
)

func provideSettings(logger *zap.Logger) (*settings.Store, error) {
	path, err := config.SettingsPath()
	if err != nil {
		return nil, err
	}
	return settings.Load(path, logger), nil
}

func provideRegistry() (*recognition.Registry, error) {
	path, err := config.ProvidersConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := appconfig.LoadProvidersConfig(path)
	if err != nil {
		return nil, err
	}
	return recognition.BuildRegistry(cfg.SettingsByProvider())
}

func provideOrchestrator(registry *recognition.Registry, store *settings.Store, logger *zap.Logger) *recognition.Orchestrator {
	return recognition.NewOrchestrator(registry, store, logger)
}

func provideLedger() *ledger.Ledger {
	return ledger.New()
}

func provideArchive() (repository.TranscriptArchive, error) {
	path, err := config.ArchivePath()
	if err != nil {
		return nil, err
	}
	return sqlite.Open(path)
}

func provideConverter(orch *recognition.Orchestrator, led *ledger.Ledger, logger *zap.Logger) *converter.Converter {
	var rec session.Recognizer = orch
	return converter.New(rec, led, logger)
}
