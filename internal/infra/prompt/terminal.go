package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/git-jira/internal/domain"
)

var labelStyle = lipgloss.NewStyle().Bold(true)

// Terminal prompts with a bubbletea text input.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// Ensure Terminal implements domain.Prompter.
var _ domain.Prompter = (*Terminal)(nil)

// NewTerminal creates a terminal prompter.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// inputModel is the bubbletea model of a single-field prompt.
type inputModel struct {
	label     string
	textInput textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(label string, secret bool) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return inputModel{label: label, textInput: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", labelStyle.Render(m.label+":"), m.textInput.View())
}

// Prompt runs the text input until enter (answer) or ctrl+c/esc (cancelled).
func (p *Terminal) Prompt(ctx context.Context, label string, secret bool) (string, error) {
	program := tea.NewProgram(
		newInputModel(label, secret),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", label, err)
	}
	m, ok := final.(inputModel)
	if !ok || m.cancelled {
		return "", fmt.Errorf("%w: %s", domain.ErrPromptCancelled, label)
	}
	return strings.TrimSpace(m.textInput.Value()), nil
}
