package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/git-jira/internal/domain"
	"github.com/runoshun/git-jira/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAnswers() map[string]string {
	return map[string]string{
		domain.PromptURL:      "https://jira.example.com",
		domain.PromptUsername: "alice",
		domain.PromptPassword: "secret",
	}
}

func TestResolveConfig_Execute_FromStore(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.Values[domain.ConfigKeyURL] = "https://jira.example.com\n"
	store.Values[domain.ConfigKeyCredential] = domain.NewCredential("alice", "secret").Encode()
	prompter := testutil.NewMockPrompter(nil)
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com", out.Config.BaseURL.String())
	assert.Equal(t, "alice", out.Config.Credential.Username)
	assert.Equal(t, "secret", out.Config.Credential.PasswordOrEmpty())
	assert.Empty(t, prompter.Asked, "no prompt expected")
	assert.Empty(t, store.SetKeys, "nothing should be written")
}

func TestResolveConfig_Execute_PromptsAndPersists(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	prompter := testutil.NewMockPrompter(allAnswers())
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com", out.Config.BaseURL.String())
	assert.Equal(t, "alice", out.Config.Credential.Username)
	assert.Equal(t, "secret", out.Config.Credential.PasswordOrEmpty())

	assert.Equal(t, []string{domain.PromptURL, domain.PromptUsername, domain.PromptPassword}, prompter.Asked)
	assert.Equal(t, []bool{false, false, true}, prompter.Secret, "only the password is secret")
	assert.Equal(t, []string{domain.ConfigKeyURL, domain.ConfigKeyCredential}, store.SetKeys)
	assert.Equal(t, "https://jira.example.com", store.Values[domain.ConfigKeyURL])
	assert.Equal(t, "YWxpY2U6c2VjcmV0", store.Values[domain.ConfigKeyCredential])
}

func TestResolveConfig_Execute_SecondRunDoesNotPrompt(t *testing.T) {
	store := testutil.NewMockConfigStore()

	first := testutil.NewMockPrompter(allAnswers())
	out1, err := NewResolveConfig(store, first, &testutil.MockLogger{}).Execute(context.Background(), ResolveConfigInput{})
	require.NoError(t, err)

	second := testutil.NewMockPrompter(nil)
	out2, err := NewResolveConfig(store, second, &testutil.MockLogger{}).Execute(context.Background(), ResolveConfigInput{})
	require.NoError(t, err)

	assert.Empty(t, second.Asked)
	assert.Equal(t, out1.Config.BaseURL.String(), out2.Config.BaseURL.String())
	assert.Equal(t, out1.Config.Credential.Username, out2.Config.Credential.Username)
	assert.Equal(t, out1.Config.Credential.PasswordOrEmpty(), out2.Config.Credential.PasswordOrEmpty())
}

func TestResolveConfig_Execute_OnlyCredentialMissing(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.Values[domain.ConfigKeyURL] = "https://jira.example.com"
	prompter := testutil.NewMockPrompter(allAnswers())
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{domain.PromptUsername, domain.PromptPassword}, prompter.Asked)
	assert.Equal(t, []string{domain.ConfigKeyCredential}, store.SetKeys)
}

func TestResolveConfig_Execute_InvalidPromptedURL(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	answers := allAnswers()
	answers[domain.PromptURL] = "jira.example.com"
	prompter := testutil.NewMockPrompter(answers)
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert - nothing persisted for an invalid answer
	require.ErrorIs(t, err, domain.ErrInvalidBaseURL)
	assert.Empty(t, store.SetKeys)
}

func TestResolveConfig_Execute_InvalidStoredURL(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.Values[domain.ConfigKeyURL] = "not a url"
	prompter := testutil.NewMockPrompter(allAnswers())
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.ErrorIs(t, err, domain.ErrInvalidBaseURL)
	assert.Contains(t, err.Error(), "git config --global "+domain.ConfigKeyURL)
	assert.Empty(t, prompter.Asked)
}

func TestResolveConfig_Execute_UnparsableCredentialReprompts(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.Values[domain.ConfigKeyURL] = "https://jira.example.com"
	store.Values[domain.ConfigKeyCredential] = "!!!not-base64"
	prompter := testutil.NewMockPrompter(allAnswers())
	logger := &testutil.MockLogger{}
	uc := NewResolveConfig(store, prompter, logger)

	// Execute
	out, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Config.Credential.Username)
	assert.Equal(t, []string{domain.PromptUsername, domain.PromptPassword}, prompter.Asked)
	require.Len(t, logger.Warns, 1)
	assert.Contains(t, logger.Warns[0], domain.ConfigKeyCredential)
}

func TestResolveConfig_Execute_CredentialWithoutPassword(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.Values[domain.ConfigKeyURL] = "https://jira.example.com"
	store.Values[domain.ConfigKeyCredential] = "YWxpY2U=" // "alice"
	uc := NewResolveConfig(store, testutil.NewMockPrompter(nil), &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Config.Credential.Username)
	assert.Nil(t, out.Config.Credential.Password)
}

func TestResolveConfig_Execute_StoreGetError(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.GetErr = errors.New("disk on fire")
	prompter := testutil.NewMockPrompter(allAnswers())
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Empty(t, prompter.Asked)
}

func TestResolveConfig_Execute_StoreSetError(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.SetErr = errors.New("read-only")
	prompter := testutil.NewMockPrompter(allAnswers())
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save "+domain.ConfigKeyURL)
}

func TestResolveConfig_Execute_PromptCancelled(t *testing.T) {
	// Setup
	store := testutil.NewMockConfigStore()
	store.Values[domain.ConfigKeyURL] = "https://jira.example.com"
	prompter := testutil.NewMockPrompter(nil)
	prompter.Err = domain.ErrPromptCancelled
	uc := NewResolveConfig(store, prompter, &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), ResolveConfigInput{})

	// Assert
	require.ErrorIs(t, err, domain.ErrPromptCancelled)
	assert.Equal(t, []string{domain.PromptUsername}, prompter.Asked)
	assert.Empty(t, store.SetKeys)
}
