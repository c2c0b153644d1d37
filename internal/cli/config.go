package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/aiornot/gosdk"
)

// configPath returns ~/.aiornot/config.json.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, ".aiornot", "config.json"), nil
}

// loadAPIKey resolves the API key: environment variables first, then the
// config file.
func loadAPIKey() (string, error) {
	if key := os.Getenv("AIORNOT_API_KEY"); key != "" {
		return key, nil
	}
	if key := os.Getenv("AIORNOT_API_TOKEN"); key != "" {
		return key, nil
	}

	path, err := configPath()
	if err != nil {
		return "", err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err == nil {
		if key := v.GetString("api_key"); key != "" {
			return key, nil
		}
		if key := v.GetString("api_token"); key != "" {
			return key, nil
		}
	}

	return "", errors.New("no API token found: set AIORNOT_API_KEY or run `aiornot token config`")
}

// saveAPIKey writes the key to the config file, creating ~/.aiornot with
// owner-only permissions.
func saveAPIKey(apiKey string) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.Marshal(map[string]string{"api_key": apiKey})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("cannot write config file: %w", err)
	}
	return path, nil
}

// newClient builds an SDK client with the resolved credential.
func newClient() (*aiornot.Client, error) {
	apiKey, err := loadAPIKey()
	if err != nil {
		return nil, err
	}
	return aiornot.New(aiornot.WithAPIKey(apiKey))
}
