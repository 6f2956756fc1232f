// Package prompt asks the user for missing configuration values.
//
// On a terminal the prompt is a bubbletea text input, which masks secrets.
// Otherwise a plain "<label>: " line prompt reads one line from the input,
// so answers can be piped in.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/runoshun/git-jira/internal/domain"
)

// New returns the prompter suited to in: interactive when in is a terminal,
// line-based otherwise.
func New(in *os.File, out io.Writer) domain.Prompter {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return NewTerminal(in, out)
	}
	return NewLine(in, out)
}

// Line prompts by writing "<label>: " and reading one line.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure Line implements domain.Prompter.
var _ domain.Prompter = (*Line)(nil)

// NewLine creates a line prompter. The reader is buffered once so that
// consecutive prompts consume consecutive lines.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Prompt reads one line. secret has no effect: input is not a terminal.
func (p *Line) Prompt(ctx context.Context, label string, _ bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: no input for %s", domain.ErrPromptCancelled, label)
		}
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}
