package domain

import "strings"

// Branch is one line of the local branch listing.
type Branch struct {
	Line    string // Raw listing line, printed as-is in the report
	Name    string // Branch name without the current-branch marker
	Current bool   // True for the checked-out branch
}

// ParseBranchLine parses a line of "git branch --list --no-column" output.
// The listing prefixes the current branch with "* " and others with two spaces.
func ParseBranchLine(line string) Branch {
	b := Branch{Line: line}
	switch {
	case strings.HasPrefix(line, "* "):
		b.Current = true
		b.Name = strings.TrimSpace(line[2:])
	default:
		b.Name = strings.TrimSpace(line)
	}
	return b
}

// FormatBranchLine renders a branch the way the git listing does.
func FormatBranchLine(name string, current bool) string {
	if current {
		return "* " + name
	}
	return "  " + name
}

// AnnotatedBranch is a branch joined with its issue summary.
type AnnotatedBranch struct {
	Branch  Branch
	Key     IssueKey
	Summary string
}
