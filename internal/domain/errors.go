package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrCommandFailed      = errors.New("command failed")
	ErrInvalidBaseURL     = errors.New("invalid tracker URL (must be absolute, e.g. https://jira.example.com)")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrTrackerRequest     = errors.New("tracker request failed")
	ErrUnexpectedResponse = errors.New("unexpected tracker response")
	ErrIssueNotFound      = errors.New("issue not found in tracker response")
	ErrPromptCancelled    = errors.New("prompt cancelled")
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrUnknownFormat      = errors.New("unknown output format")
)

// CommandError is returned when an external command ran but exited non-zero.
// Stderr holds the command's error stream verbatim so it can be forwarded.
type CommandError struct {
	Name     string
	Stderr   []byte
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
}

// Is reports whether target is ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
