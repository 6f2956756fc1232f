// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/runoshun/git-jira/internal/domain"
)

// ResolveConfigInput contains the parameters for resolving configuration.
type ResolveConfigInput struct{}

// ResolveConfigOutput contains the resolved configuration.
type ResolveConfigOutput struct {
	Config *domain.Config
}

// ResolveConfig loads the tracker URL and credential, prompting for and
// persisting whatever the store does not have yet.
type ResolveConfig struct {
	store       domain.ConfigStore
	prompter    domain.Prompter
	logger      domain.Logger
	credentials []domain.CredentialProvider
}

// NewResolveConfig creates a new ResolveConfig use case.
// Credentials come from the store first, then from an interactive prompt.
func NewResolveConfig(store domain.ConfigStore, prompter domain.Prompter, logger domain.Logger) *ResolveConfig {
	return &ResolveConfig{
		store:    store,
		prompter: prompter,
		logger:   logger,
		credentials: []domain.CredentialProvider{
			NewStoreCredentials(store, logger),
			NewPromptCredentials(store, prompter),
		},
	}
}

// Execute resolves the configuration.
func (uc *ResolveConfig) Execute(ctx context.Context, _ ResolveConfigInput) (*ResolveConfigOutput, error) {
	baseURL, err := uc.resolveBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	cred, err := uc.resolveCredential(ctx)
	if err != nil {
		return nil, err
	}
	return &ResolveConfigOutput{
		Config: &domain.Config{BaseURL: baseURL, Credential: cred},
	}, nil
}

func (uc *ResolveConfig) resolveBaseURL(ctx context.Context) (*url.URL, error) {
	raw, err := uc.readOrPrompt(ctx, domain.ConfigKeyURL, domain.PromptURL, validateBaseURL)
	if err != nil {
		return nil, err
	}
	// Prompted answers are validated before saving, so only a stored value can fail here.
	baseURL, err := domain.ParseBaseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("stored %s: %w (fix it with: git config --global %s <url>)",
			domain.ConfigKeyURL, err, domain.ConfigKeyURL)
	}
	return baseURL, nil
}

func validateBaseURL(raw string) error {
	_, err := domain.ParseBaseURL(raw)
	return err
}

func (uc *ResolveConfig) resolveCredential(ctx context.Context) (domain.Credential, error) {
	for _, p := range uc.credentials {
		cred, ok, err := p.Credential(ctx)
		if err != nil {
			return domain.Credential{}, err
		}
		if ok {
			return cred, nil
		}
	}
	return domain.Credential{}, errors.New("no credential available")
}

// readOrPrompt returns the stored value for key, or prompts with label,
// validates the answer and persists it.
func (uc *ResolveConfig) readOrPrompt(ctx context.Context, key, label string, validate func(string) error) (string, error) {
	value, ok, err := uc.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	if ok {
		uc.logger.Debug("config", "loaded "+key+" from store")
		return value, nil
	}

	value, err = uc.prompter.Prompt(ctx, label, false)
	if err != nil {
		return "", err
	}
	if validate != nil {
		if err := validate(value); err != nil {
			return "", err
		}
	}
	if err := uc.store.Set(ctx, key, value); err != nil {
		return "", fmt.Errorf("save %s: %w", key, err)
	}
	uc.logger.Debug("config", "saved "+key+" to store")
	return value, nil
}
