// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-jira/internal/domain"
)

// MockConfigStore is an in-memory domain.ConfigStore.
// Fields are ordered to minimize memory padding.
type MockConfigStore struct {
	Values  map[string]string
	GetErr  error
	SetErr  error
	SetKeys []string // Keys passed to Set, in call order
}

// NewMockConfigStore creates a new MockConfigStore with an initialized map.
func NewMockConfigStore() *MockConfigStore {
	return &MockConfigStore{Values: make(map[string]string)}
}

// Get returns the trimmed value for key.
func (m *MockConfigStore) Get(_ context.Context, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	value := strings.TrimSpace(m.Values[key])
	return value, value != "", nil
}

// Set stores value for key.
func (m *MockConfigStore) Set(_ context.Context, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.SetKeys = append(m.SetKeys, key)
	m.Values[key] = value
	return nil
}

// MockPrompter answers prompts by label.
// Fields are ordered to minimize memory padding.
type MockPrompter struct {
	Answers map[string]string // label -> answer
	Err     error
	Asked   []string // Labels prompted, in call order
	Secret  []bool   // secret flag per call
}

// NewMockPrompter creates a MockPrompter with the given answers.
func NewMockPrompter(answers map[string]string) *MockPrompter {
	return &MockPrompter{Answers: answers}
}

// Prompt returns the configured answer for label.
func (m *MockPrompter) Prompt(_ context.Context, label string, secret bool) (string, error) {
	m.Asked = append(m.Asked, label)
	m.Secret = append(m.Secret, secret)
	if m.Err != nil {
		return "", m.Err
	}
	answer, ok := m.Answers[label]
	if !ok {
		return "", fmt.Errorf("%w: unexpected prompt %q", domain.ErrPromptCancelled, label)
	}
	return answer, nil
}

// MockBranchLister returns a fixed branch listing.
type MockBranchLister struct {
	Err      error
	Branches []domain.Branch
	Calls    int
}

// NewMockBranchLister creates a lister returning the given raw listing lines.
func NewMockBranchLister(lines ...string) *MockBranchLister {
	m := &MockBranchLister{}
	for _, line := range lines {
		m.Branches = append(m.Branches, domain.ParseBranchLine(line))
	}
	return m
}

// ListBranches returns the configured branches.
func (m *MockBranchLister) ListBranches(_ context.Context) ([]domain.Branch, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Branches, nil
}

// MockIssueTracker returns summaries from a fixed map.
// Fields are ordered to minimize memory padding.
type MockIssueTracker struct {
	Known     map[string]string
	Err       error
	Requested [][]domain.IssueKey // keys passed per call
}

// NewMockIssueTracker creates a tracker knowing the given summaries.
func NewMockIssueTracker(summaries map[string]string) *MockIssueTracker {
	return &MockIssueTracker{Known: summaries}
}

// Summaries returns the known summaries among keys.
func (m *MockIssueTracker) Summaries(_ context.Context, keys []domain.IssueKey) (map[string]string, error) {
	m.Requested = append(m.Requested, keys)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]string)
	for _, k := range keys {
		if s, ok := m.Known[string(k)]; ok {
			out[string(k)] = s
		}
	}
	return out, nil
}

// Calls returns how many searches were made.
func (m *MockIssueTracker) Calls() int {
	return len(m.Requested)
}

// Factory returns a domain.TrackerFactory that hands out m and records the config.
func (m *MockIssueTracker) Factory(got **domain.Config) domain.TrackerFactory {
	return func(cfg *domain.Config) (domain.IssueTracker, error) {
		if got != nil {
			*got = cfg
		}
		return m, nil
	}
}

// MockLogger records messages per level.
type MockLogger struct {
	Debugs []string
	Infos  []string
	Warns  []string
	Errors []string
}

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string) {
	m.Debugs = append(m.Debugs, "["+category+"] "+msg)
}

// Info records an info message.
func (m *MockLogger) Info(category, msg string) {
	m.Infos = append(m.Infos, "["+category+"] "+msg)
}

// Warn records a warning message.
func (m *MockLogger) Warn(category, msg string) {
	m.Warns = append(m.Warns, "["+category+"] "+msg)
}

// Error records an error message.
func (m *MockLogger) Error(category, msg string) {
	m.Errors = append(m.Errors, "["+category+"] "+msg)
}
