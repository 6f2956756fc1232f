// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/runoshun/git-jira/internal/domain"
	"github.com/runoshun/git-jira/internal/infra/config"
	"github.com/runoshun/git-jira/internal/infra/filestore"
	"github.com/runoshun/git-jira/internal/infra/git"
	"github.com/runoshun/git-jira/internal/infra/gogit"
	"github.com/runoshun/git-jira/internal/infra/jira"
	"github.com/runoshun/git-jira/internal/infra/logging"
	"github.com/runoshun/git-jira/internal/infra/prompt"
	"github.com/runoshun/git-jira/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store    domain.ConfigStore
	Prompter domain.Prompter

	// Branches and Trackers override the settings-driven adapters when set.
	Branches domain.BranchLister
	Trackers domain.TrackerFactory

	// Pointer fields
	Settings   *domain.Settings
	Logger     *logging.Logger
	HTTPClient *http.Client

	// Dir is the working directory the branch listing runs in.
	Dir string
}

// New creates a new Container for the working directory dir.
// Settings are loaded from the global settings file. Prompts read stdin and
// write stdout; diagnostics go to stderr.
func New(dir string, stdin *os.File, stdout, stderr io.Writer) (*Container, error) {
	settings, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}

	store, err := newStore(dir, settings)
	if err != nil {
		return nil, err
	}

	return &Container{
		Store:      store,
		Prompter:   prompt.New(stdin, stdout),
		Settings:   settings,
		Logger:     logging.New(stderr, logging.ParseLevel(settings.Log.Level)),
		HTTPClient: &http.Client{},
		Dir:        dir,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(settings *domain.Settings, store domain.ConfigStore, prompter domain.Prompter,
	branches domain.BranchLister, trackers domain.TrackerFactory, logger *logging.Logger,
) *Container {
	return &Container{
		Store:    store,
		Prompter: prompter,
		Branches: branches,
		Trackers: trackers,
		Settings: settings,
		Logger:   logger,
	}
}

func newStore(dir string, settings *domain.Settings) (domain.ConfigStore, error) {
	switch settings.Store.Backend {
	case "", domain.StoreBackendGit:
		return git.NewClient(dir), nil
	case domain.StoreBackendFile:
		return filestore.New(settings.Store.Path), nil
	default:
		return nil, fmt.Errorf("%w: store %q", domain.ErrUnknownBackend, settings.Store.Backend)
	}
}

// BranchLister returns the branch lister for source ("git" or "go-git").
func (c *Container) BranchLister(source string) (domain.BranchLister, error) {
	if c.Branches != nil {
		return c.Branches, nil
	}
	switch source {
	case "", domain.BranchSourceGit:
		return git.NewClient(c.Dir), nil
	case domain.BranchSourceGoGit:
		return gogit.New(c.Dir), nil
	default:
		return nil, fmt.Errorf("%w: branch source %q", domain.ErrUnknownBackend, source)
	}
}

// TrackerFactory returns a factory building tracker clients with the given
// request timeout. A zero timeout disables it.
func (c *Container) TrackerFactory(timeout time.Duration) domain.TrackerFactory {
	if c.Trackers != nil {
		return c.Trackers
	}
	return func(cfg *domain.Config) (domain.IssueTracker, error) {
		return jira.NewClient(cfg, jira.Options{
			HTTPClient: c.HTTPClient,
			Logger:     c.Logger,
			Timeout:    timeout,
		}), nil
	}
}

// UseCase factory methods

// ResolveConfigUseCase returns a new ResolveConfig use case.
func (c *Container) ResolveConfigUseCase() *usecase.ResolveConfig {
	return usecase.NewResolveConfig(c.Store, c.Prompter, c.Logger)
}

// AnnotateBranchesUseCase returns a new AnnotateBranches use case listing
// branches from source and querying the tracker with timeout.
func (c *Container) AnnotateBranchesUseCase(source string, timeout time.Duration) (*usecase.AnnotateBranches, error) {
	branches, err := c.BranchLister(source)
	if err != nil {
		return nil, err
	}
	return usecase.NewAnnotateBranches(branches, c.TrackerFactory(timeout), c.Logger), nil
}
