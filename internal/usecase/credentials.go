package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-jira/internal/domain"
)

// StoreCredentials provides the credential persisted in the configuration store.
type StoreCredentials struct {
	store  domain.ConfigStore
	logger domain.Logger
}

// NewStoreCredentials creates a StoreCredentials provider.
func NewStoreCredentials(store domain.ConfigStore, logger domain.Logger) *StoreCredentials {
	return &StoreCredentials{store: store, logger: logger}
}

// Credential returns the stored credential. A missing or unparsable value is
// reported as not available so the next provider is tried.
func (p *StoreCredentials) Credential(ctx context.Context) (domain.Credential, bool, error) {
	token, ok, err := p.store.Get(ctx, domain.ConfigKeyCredential)
	if err != nil {
		return domain.Credential{}, false, fmt.Errorf("load credential: %w", err)
	}
	if !ok {
		return domain.Credential{}, false, nil
	}
	cred, err := domain.ParseCredential(token)
	if err != nil {
		p.logger.Warn("config", fmt.Sprintf("ignoring stored %s: %v", domain.ConfigKeyCredential, err))
		return domain.Credential{}, false, nil
	}
	return cred, true, nil
}

// PromptCredentials asks for a username and password and writes the result
// back through the store.
type PromptCredentials struct {
	store    domain.ConfigStore
	prompter domain.Prompter
}

// NewPromptCredentials creates a PromptCredentials provider.
func NewPromptCredentials(store domain.ConfigStore, prompter domain.Prompter) *PromptCredentials {
	return &PromptCredentials{store: store, prompter: prompter}
}

// Credential prompts for the credential and persists it.
func (p *PromptCredentials) Credential(ctx context.Context) (domain.Credential, bool, error) {
	username, err := p.prompter.Prompt(ctx, domain.PromptUsername, false)
	if err != nil {
		return domain.Credential{}, false, err
	}
	password, err := p.prompter.Prompt(ctx, domain.PromptPassword, true)
	if err != nil {
		return domain.Credential{}, false, err
	}
	cred := domain.NewCredential(username, password)
	if err := p.store.Set(ctx, domain.ConfigKeyCredential, cred.Encode()); err != nil {
		return domain.Credential{}, false, fmt.Errorf("save credential: %w", err)
	}
	return cred, true, nil
}

var (
	_ domain.CredentialProvider = (*StoreCredentials)(nil)
	_ domain.CredentialProvider = (*PromptCredentials)(nil)
)
