// Package config provides settings loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/git-jira/internal/domain"
)

// Loader loads settings from the global TOML file.
type Loader struct {
	globalConfDir string // Path to global config directory (e.g., ~/.config/git-jira)
}

// NewLoader creates a new Loader using the default global config directory.
func NewLoader() *Loader {
	return &Loader{globalConfDir: defaultGlobalConfigDir()}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(globalConfDir string) *Loader {
	return &Loader{globalConfDir: globalConfDir}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Dir returns the global config directory.
func (l *Loader) Dir() string {
	return l.globalConfDir
}

// Path returns the settings file path.
func (l *Loader) Path() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.SettingsFileName)
}

// Load returns the settings with defaults applied.
// A missing file is not an error. Unknown keys are reported in Settings.Warnings.
func (l *Loader) Load() (*domain.Settings, error) {
	settings := domain.NewDefaultSettings()
	if l.globalConfDir != "" {
		settings.Store.Path = filepath.Join(l.globalConfDir, domain.CredentialsFileName)
	}

	path := l.Path()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	warnings, err := decode(data, settings)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	settings.Warnings = warnings

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// decode unmarshals data over settings. Keys the settings do not know about
// are returned as warnings instead of failing the load.
func decode(data []byte, settings *domain.Settings) ([]string, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(settings)
	if err == nil {
		return nil, nil
	}

	var strictErr *toml.StrictMissingError
	if !errors.As(err, &strictErr) {
		return nil, err
	}

	var warnings []string
	for _, e := range strictErr.Errors {
		warnings = append(warnings, "unknown key in settings: "+strings.Join(e.Key(), "."))
	}
	// Decode again leniently so the known keys still apply.
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return warnings, nil
}

// Validate checks enumerated values and the timeout.
func Validate(s *domain.Settings) error {
	switch s.Store.Backend {
	case domain.StoreBackendGit, domain.StoreBackendFile:
	default:
		return fmt.Errorf("%w: store.backend %q", domain.ErrUnknownBackend, s.Store.Backend)
	}
	switch s.Branches.Source {
	case domain.BranchSourceGit, domain.BranchSourceGoGit:
	default:
		return fmt.Errorf("%w: branches.source %q", domain.ErrUnknownBackend, s.Branches.Source)
	}
	switch s.Output.Format {
	case domain.FormatText, domain.FormatJSON, domain.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s.Output.Format)
	}
	if _, err := ParseTimeout(s.Jira.Timeout); err != nil {
		return err
	}
	return nil
}

// ParseTimeout parses a timeout setting. "" and "0" mean no timeout.
func ParseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", raw)
	}
	return d, nil
}
