package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file when one exists
// near the working directory. Absence of a .env file is not an error;
// variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// DataDir resolves the directory holding config.json, providers.yaml and
// the transcript archive. VOICESCRIBE_DATA overrides the default of
// ~/.voicescribe.
func DataDir() (string, error) {
	if dir := os.Getenv("VOICESCRIBE_DATA"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".voicescribe"), nil
}

// SettingsPath returns the location of config.json.
func SettingsPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ProvidersConfigPath returns the location of providers.yaml.
func ProvidersConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "providers.yaml"), nil
}

// ArchivePath returns the location of the sqlite transcript archive.
func ArchivePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "transcripts.db"), nil
}
