package domain

import "context"

// ConfigStore is a persistent string key/value store for tracker settings.
type ConfigStore interface {
	// Get returns the trimmed value for key. ok is false when the key is
	// absent or its value is empty.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set persists value for key in the user-wide (global) scope.
	Set(ctx context.Context, key, value string) error
}

// Prompter asks the user for a single value.
type Prompter interface {
	// Prompt shows label and returns the trimmed answer.
	// When secret is true the input should not be echoed.
	Prompt(ctx context.Context, label string, secret bool) (string, error)
}

// CredentialProvider supplies the tracker credential.
type CredentialProvider interface {
	// Credential returns the credential. ok is false when this provider has
	// nothing to offer and the next one should be tried.
	Credential(ctx context.Context) (cred Credential, ok bool, err error)
}

// BranchLister enumerates local branches.
type BranchLister interface {
	// ListBranches returns local branches in listing order.
	// A *CommandError is returned when the listing command exited non-zero.
	ListBranches(ctx context.Context) ([]Branch, error)
}

// IssueTracker looks up issue summaries.
type IssueTracker interface {
	// Summaries returns a map from issue key to summary for the given keys
	// using a single search request.
	Summaries(ctx context.Context, keys []IssueKey) (map[string]string, error)
}

// TrackerFactory builds an IssueTracker once configuration is resolved.
type TrackerFactory func(cfg *Config) (IssueTracker, error)

// Logger is the diagnostic logger used by use cases.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(_, _ string) {}
func (NopLogger) Info(_, _ string)  {}
func (NopLogger) Warn(_, _ string)  {}
func (NopLogger) Error(_, _ string) {}
