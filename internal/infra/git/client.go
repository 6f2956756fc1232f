// Package git provides git operations via the git CLI.
package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/runoshun/git-jira/internal/domain"
)

// Client runs git commands in a working directory.
type Client struct {
	workingDir string // Directory git runs in ("" = process cwd)
	binary     string // git executable
}

// NewClient creates a new git client running in dir.
func NewClient(dir string) *Client {
	return &Client{workingDir: dir, binary: "git"}
}

// NewClientWithBinary creates a client using a specific git executable.
// This is useful for testing spawn failures.
func NewClientWithBinary(dir, binary string) *Client {
	return &Client{workingDir: dir, binary: binary}
}

// Ensure Client implements the domain ports it serves.
var (
	_ domain.ConfigStore  = (*Client)(nil)
	_ domain.BranchLister = (*Client)(nil)
)

// run executes git and returns stdout. A non-zero exit yields *domain.CommandError;
// any other failure (e.g. git not installed) is returned wrapped.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = c.workingDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &domain.CommandError{
				Name:     "git " + args[0],
				Stderr:   stderr.Bytes(),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return nil, fmt.Errorf("execute git %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

// Get reads a value with "git config <key>".
// A non-zero exit (key not set) or empty output reports the key as absent.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := c.run(ctx, "config", key)
	if err != nil {
		if errors.Is(err, domain.ErrCommandFailed) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read config %s: %w", key, err)
	}
	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Set writes a value with "git config --global <key> <value>".
func (c *Client) Set(ctx context.Context, key, value string) error {
	if _, err := c.run(ctx, "config", "--global", key, value); err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			if msg := strings.TrimSpace(string(cmdErr.Stderr)); msg != "" {
				return fmt.Errorf("write config %s: %w: %s", key, err, msg)
			}
		}
		return fmt.Errorf("write config %s: %w", key, err)
	}
	return nil
}

// ListBranches runs "git branch --list --no-column" and returns one branch per line.
// The *domain.CommandError from a non-zero exit is returned unwrapped so the
// caller can forward git's stderr.
func (c *Client) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	out, err := c.run(ctx, "branch", "--list", "--no-column")
	if err != nil {
		return nil, err
	}

	var branches []domain.Branch
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		branches = append(branches, domain.ParseBranchLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read branch listing: %w", err)
	}
	return branches, nil
}
