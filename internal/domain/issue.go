package domain

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// IssueKey is a tracker ticket identifier such as "PROJ-123".
// The empty key means no key was found.
type IssueKey string

var issueKeyPattern = regexp.MustCompile(`[A-Z]+-[0-9]+`)

// ExtractIssueKey returns the first issue key in s, or "" if there is none.
func ExtractIssueKey(s string) IssueKey {
	return IssueKey(issueKeyPattern.FindString(s))
}

// ExtractIssueKeys extracts one key per branch, in branch order.
func ExtractIssueKeys(branches []Branch) []IssueKey {
	return lo.Map(branches, func(b Branch, _ int) IssueKey {
		return ExtractIssueKey(b.Line)
	})
}

// UniqueKeys returns the distinct non-empty keys in first-seen order.
func UniqueKeys(keys []IssueKey) []IssueKey {
	return lo.Uniq(lo.Compact(keys))
}

// BuildJQL builds the search expression selecting the given keys.
// Keys are de-duplicated in first-seen order; with no keys the expression
// selects the empty set.
func BuildJQL(keys []IssueKey) string {
	parts := lo.Map(UniqueKeys(keys), func(k IssueKey, _ int) string {
		return string(k)
	})
	return "key in (" + strings.Join(parts, ",") + ")"
}
