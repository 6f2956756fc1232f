package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/runoshun/git-jira/internal/domain"
	"gopkg.in/yaml.v3"
)

// renderFunc writes the annotated branch report.
type renderFunc func(w io.Writer, branches []domain.AnnotatedBranch) error

func rendererFor(format string) (renderFunc, error) {
	switch format {
	case "", domain.FormatText:
		return renderText, nil
	case domain.FormatJSON:
		return renderJSON, nil
	case domain.FormatYAML:
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("%w: %q (want text, json or yaml)", domain.ErrUnknownFormat, format)
	}
}

// renderText prints "<listing line> \t<summary>" per branch.
// On a colour terminal the summary is dimmed; otherwise it is written as is.
func renderText(w io.Writer, branches []domain.AnnotatedBranch) error {
	r := lipgloss.NewRenderer(w)
	plain := r.ColorProfile() == termenv.Ascii
	summaryStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "248"})

	for _, b := range branches {
		summary := b.Summary
		if !plain && summary != "" {
			summary = summaryStyle.Render(summary)
		}
		if _, err := fmt.Fprintf(w, "%s \t%s\n", b.Branch.Line, summary); err != nil {
			return err
		}
	}
	return nil
}

// branchRecord is the JSON/YAML shape of one report line.
type branchRecord struct {
	Branch  string `json:"branch" yaml:"branch"`
	Key     string `json:"key" yaml:"key"`
	Summary string `json:"summary" yaml:"summary"`
	Current bool   `json:"current" yaml:"current"`
}

func toRecords(branches []domain.AnnotatedBranch) []branchRecord {
	records := make([]branchRecord, len(branches))
	for i, b := range branches {
		records[i] = branchRecord{
			Branch:  b.Branch.Name,
			Current: b.Branch.Current,
			Key:     string(b.Key),
			Summary: b.Summary,
		}
	}
	return records
}

func renderJSON(w io.Writer, branches []domain.AnnotatedBranch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toRecords(branches))
}

func renderYAML(w io.Writer, branches []domain.AnnotatedBranch) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toRecords(branches)); err != nil {
		return err
	}
	return enc.Close()
}
