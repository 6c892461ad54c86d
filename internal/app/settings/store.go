package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	DefaultProvider = "google"
	DefaultLanguage = "en-US"
)

// fileFormat is the on-disk shape of config.json. The key names are part
// of the contract with earlier releases and must not change.
type fileFormat struct {
	DefaultAPI      string            `json:"default_api"`
	DefaultLanguage string            `json:"default_language"`
	APIKeys         map[string]string `json:"api_keys"`
}

// Store holds the process-wide recognition settings: the active provider,
// the active language, and the per-provider credentials. Every mutation is
// persisted synchronously; a failed persist is logged as a warning and the
// in-memory change stands.
type Store struct {
	mu     sync.RWMutex
	path   string
	logger *zap.Logger
	data   fileFormat
}

// Load reads config.json from path. A missing file yields defaults, a
// malformed file logs a warning and yields defaults. Neither is fatal.
func Load(path string, logger *zap.Logger) *Store {
	s := &Store{
		path:   path,
		logger: logger,
		data: fileFormat{
			DefaultAPI:      DefaultProvider,
			DefaultLanguage: DefaultLanguage,
			APIKeys:         make(map[string]string),
		},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read config file, using defaults",
				zap.String("path", path), zap.Error(err))
		}
		return s
	}

	var parsed fileFormat
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logger.Warn("config file is malformed, using defaults",
			zap.String("path", path), zap.Error(err))
		return s
	}

	if parsed.DefaultAPI != "" {
		s.data.DefaultAPI = parsed.DefaultAPI
	}
	if parsed.DefaultLanguage != "" {
		s.data.DefaultLanguage = parsed.DefaultLanguage
	}
	if parsed.APIKeys != nil {
		s.data.APIKeys = parsed.APIKeys
	}
	return s
}

// ActiveProvider returns the id of the currently selected provider.
func (s *Store) ActiveProvider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DefaultAPI
}

// SetActiveProvider selects a provider and persists the change.
func (s *Store) SetActiveProvider(id string) {
	s.mu.Lock()
	s.data.DefaultAPI = id
	s.mu.Unlock()
	s.persist()
}

// ActiveLanguage returns the currently selected language code.
func (s *Store) ActiveLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DefaultLanguage
}

// SetActiveLanguage selects a language and persists the change.
func (s *Store) SetActiveLanguage(code string) {
	s.mu.Lock()
	s.data.DefaultLanguage = code
	s.mu.Unlock()
	s.persist()
}

// Credential returns the stored credential for a provider, if any.
func (s *Store) Credential(providerID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.data.APIKeys[providerID]
	return key, ok && key != ""
}

// SetCredential stores a credential for a provider and persists the change.
func (s *Store) SetCredential(providerID, credential string) {
	s.mu.Lock()
	s.data.APIKeys[providerID] = credential
	s.mu.Unlock()
	s.persist()
}

// ConfiguredProviders returns the ids that have a non-empty credential.
func (s *Store) ConfiguredProviders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data.APIKeys))
	for id, key := range s.data.APIKeys {
		if key != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// persist writes the settings atomically: a temp file in the same
// directory followed by a rename, so a crash never leaves a half-written
// config.json behind.
func (s *Store) persist() {
	s.mu.RLock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	path := s.path
	s.mu.RUnlock()

	if err != nil {
		s.logger.Warn("could not encode settings", zap.Error(err))
		return
	}

	if err := writeAtomic(path, raw); err != nil {
		s.logger.Warn("could not save settings",
			zap.String("path", path), zap.Error(err))
	}
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
