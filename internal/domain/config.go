package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Keys under which tracker settings are persisted in the configuration store.
const (
	ConfigKeyURL        = "com.spoqa.jira.url"
	ConfigKeyCredential = "com.spoqa.jira.credential"
)

// Prompt labels shown when a value is missing from the store.
const (
	PromptURL      = "JIRA URL"
	PromptUsername = "Username"
	PromptPassword = "Password"
)

// Config is the resolved tracker configuration.
// It is loaded once per invocation and never mutated afterwards.
type Config struct {
	BaseURL    *url.URL
	Credential Credential
}

// ParseBaseURL parses raw as an absolute tracker URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

// SettingsFileName is the name of the settings file in the config directory.
const SettingsFileName = "config.toml"

// CredentialsFileName is the default file used by the file store backend.
const CredentialsFileName = "credentials.toml"

// GlobalConfigDir returns the git-jira directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "git-jira")
}

// Store backends.
const (
	StoreBackendGit  = "git"
	StoreBackendFile = "file"
)

// Branch sources.
const (
	BranchSourceGit   = "git"
	BranchSourceGoGit = "go-git"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Settings holds the optional tool settings from config.toml.
// Fields are ordered to minimize memory padding.
type Settings struct {
	Warnings []string       `toml:"-"`
	Store    StoreSettings  `toml:"store"`
	Jira     JiraSettings   `toml:"jira"`
	Branches BranchSettings `toml:"branches"`
	Output   OutputSettings `toml:"output"`
	Log      LogSettings    `toml:"log"`
}

// StoreSettings holds settings from the [store] section.
type StoreSettings struct {
	Backend string `toml:"backend,omitempty"` // "git" (default) or "file"
	Path    string `toml:"path,omitempty"`    // File backend path
}

// JiraSettings holds settings from the [jira] section.
type JiraSettings struct {
	Timeout string `toml:"timeout,omitempty"` // Request timeout, e.g. "30s"; "0" disables
	Strict  bool   `toml:"strict,omitempty"`  // Fail when a key is missing from the response
}

// BranchSettings holds settings from the [branches] section.
type BranchSettings struct {
	Source string `toml:"source,omitempty"` // "git" (default) or "go-git"
}

// OutputSettings holds settings from the [output] section.
type OutputSettings struct {
	Format string `toml:"format,omitempty"` // "text" (default), "json" or "yaml"
}

// LogSettings holds settings from the [log] section.
type LogSettings struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// DefaultTimeout is the tracker request timeout used when none is configured.
const DefaultTimeout = "30s"

// NewDefaultSettings returns settings with all defaults applied.
func NewDefaultSettings() *Settings {
	return &Settings{
		Store:    StoreSettings{Backend: StoreBackendGit},
		Jira:     JiraSettings{Timeout: DefaultTimeout},
		Branches: BranchSettings{Source: BranchSourceGit},
		Output:   OutputSettings{Format: FormatText},
		Log:      LogSettings{Level: "info"},
	}
}
