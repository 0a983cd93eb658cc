package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecretsFile is the name of the credentials file looked up next to the binary.
const SecretsFile = "secrets.yml"

var (
	// ErrConfigMissing is returned when the secrets file does not exist.
	ErrConfigMissing = errors.New("secrets file not found")
	// ErrConfigIncomplete is returned when the secrets file is empty or lacks a required key.
	ErrConfigIncomplete = errors.New("secrets file incomplete")
)

// RequiredKeys lists the keys a secrets file must define, in the order they are checked.
var RequiredKeys = []string{"client_id", "client_secret", "redirect_uri", "project_id", "fitness_api_key"}

// Secrets holds the Google API credentials used by both subcommands.
type Secrets struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	ProjectID    string `yaml:"project_id"`
	APIKey       string `yaml:"fitness_api_key"`
}

// MissingKeyError names the first required key absent from the secrets file.
type MissingKeyError struct {
	Path string
	Key  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required key %q in %s (required keys: %s)",
		e.Key, e.Path, strings.Join(RequiredKeys, ", "))
}

func (e *MissingKeyError) Unwrap() error {
	return ErrConfigIncomplete
}

// DefaultSecretsPath returns secrets.yml in the directory of the running executable.
func DefaultSecretsPath() string {
	exe, err := os.Executable()
	if err != nil {
		return SecretsFile
	}
	return filepath.Join(filepath.Dir(exe), SecretsFile)
}

// LoadSecrets reads and validates the secrets file at path.
func LoadSecrets(path string) (*Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s: please create this file with your Google API credentials", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}

	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("%w: %s is empty or invalid: %v", ErrConfigIncomplete, path, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s is empty or invalid", ErrConfigIncomplete, path)
	}
	for _, key := range RequiredKeys {
		n, ok := nodes[key]
		if !ok || n.Kind != yaml.ScalarNode || n.Tag == "!!null" || strings.TrimSpace(n.Value) == "" {
			return nil, &MissingKeyError{Path: path, Key: key}
		}
	}

	// String fields keep the scalar text, so 1e3 or 0x1F stay as written.
	var s Secrets
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s is empty or invalid: %v", ErrConfigIncomplete, path, err)
	}
	s.ClientID = strings.TrimSpace(s.ClientID)
	s.ClientSecret = strings.TrimSpace(s.ClientSecret)
	s.RedirectURI = strings.TrimSpace(s.RedirectURI)
	s.ProjectID = strings.TrimSpace(s.ProjectID)
	s.APIKey = strings.TrimSpace(s.APIKey)
	return &s, nil
}
