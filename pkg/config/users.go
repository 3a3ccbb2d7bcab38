package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/oauth-mock/pkg/oauth"
)

// Errors for user override files.
var (
	ErrInvalidJSON = errors.New("invalid JSON syntax")
	ErrInvalidYAML = errors.New("invalid YAML syntax")
)

// LoadGoogleUser returns the default Google user with the overrides from
// path applied. A missing file yields the defaults.
func LoadGoogleUser(path string) (oauth.GoogleUser, error) {
	user := oauth.DefaultGoogleUser()
	if err := decodeOverride(path, &user); err != nil {
		return oauth.GoogleUser{}, err
	}
	return user, nil
}

// LoadLINEUser returns the default LINE user with the overrides from path
// applied. A missing file yields the defaults.
func LoadLINEUser(path string) (oauth.LINEUser, error) {
	user := oauth.DefaultLINEUser()
	if err := decodeOverride(path, &user); err != nil {
		return oauth.LINEUser{}, err
	}
	return user, nil
}

// LoadUser loads the user for a provider key.
func LoadUser(provider, path string) (oauth.UserRecord, error) {
	switch provider {
	case oauth.ProviderGoogle:
		return LoadGoogleUser(path)
	case oauth.ProviderLINE:
		return LoadLINEUser(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// decodeOverride decodes the file at path over target. The format is
// detected from the extension (.yaml, .yml for YAML, otherwise JSON).
func decodeOverride(path string, target any) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read user file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("%w in file %s: %w", ErrInvalidYAML, path, err)
		}
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w in file %s: %w", ErrInvalidJSON, path, err)
	}
	return nil
}
