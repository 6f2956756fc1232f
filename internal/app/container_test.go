package app

import (
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/runoshun/git-jira/internal/domain"
	"github.com/runoshun/git-jira/internal/infra/filestore"
	"github.com/runoshun/git-jira/internal/infra/git"
	"github.com/runoshun/git-jira/internal/infra/gogit"
	"github.com/runoshun/git-jira/internal/infra/jira"
	"github.com/runoshun/git-jira/internal/infra/logging"
	"github.com/runoshun/git-jira/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	settings := domain.NewDefaultSettings()

	store, err := newStore(t.TempDir(), settings)
	require.NoError(t, err)
	assert.IsType(t, &git.Client{}, store)

	settings.Store.Backend = domain.StoreBackendFile
	settings.Store.Path = "/tmp/credentials.toml"
	store, err = newStore(t.TempDir(), settings)
	require.NoError(t, err)
	require.IsType(t, &filestore.Store{}, store)
	assert.Equal(t, "/tmp/credentials.toml", store.(*filestore.Store).Path())

	settings.Store.Backend = "s3"
	_, err = newStore(t.TempDir(), settings)
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestContainer_BranchLister(t *testing.T) {
	c := &Container{Dir: t.TempDir()}

	lister, err := c.BranchLister(domain.BranchSourceGit)
	require.NoError(t, err)
	assert.IsType(t, &git.Client{}, lister)

	lister, err = c.BranchLister(domain.BranchSourceGoGit)
	require.NoError(t, err)
	assert.IsType(t, &gogit.Lister{}, lister)

	_, err = c.BranchLister("svn")
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestContainer_BranchListerOverride(t *testing.T) {
	mock := testutil.NewMockBranchLister("* main")
	c := NewWithDeps(domain.NewDefaultSettings(), nil, nil, mock, nil, nil)

	lister, err := c.BranchLister(domain.BranchSourceGoGit)

	require.NoError(t, err)
	assert.Same(t, mock, lister)
}

func TestContainer_TrackerFactory(t *testing.T) {
	c := &Container{Logger: logging.New(nil, slog.LevelInfo)}
	base, err := url.Parse("https://jira.example.com/jira")
	require.NoError(t, err)

	tracker, err := c.TrackerFactory(5 * time.Second)(&domain.Config{BaseURL: base})

	require.NoError(t, err)
	require.IsType(t, &jira.Client{}, tracker)
	assert.Equal(t, "https://jira.example.com/jira/rest/api/2/search", tracker.(*jira.Client).SearchURL())
}

func TestContainer_AnnotateBranchesUseCase(t *testing.T) {
	c := NewWithDeps(domain.NewDefaultSettings(), nil, nil, nil, nil, logging.New(nil, slog.LevelInfo))

	uc, err := c.AnnotateBranchesUseCase(domain.BranchSourceGit, 0)
	require.NoError(t, err)
	assert.NotNil(t, uc)

	_, err = c.AnnotateBranchesUseCase("hg", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}
