package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a route is not part of the site.
var ErrNotFound = errors.New("content: not found")

// Issue is a single authoring problem found while loading or checking the corpus.
type Issue struct {
	Source  string
	Field   string
	Message string
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Source != "" {
		b.WriteString(i.Source)
		b.WriteString(": ")
	}
	if i.Field != "" {
		b.WriteString(i.Field)
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

// ValidationError aggregates every issue found in one pass over the corpus.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "content: validation failed"
	}
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}
	return fmt.Sprintf("content: %d problem(s): %s", len(e.Issues), strings.Join(lines, "; "))
}

// Strings returns the issues as sorted display lines.
func (e *ValidationError) Strings() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.String())
	}
	sort.Strings(out)
	return out
}

type issues []Issue

func (is *issues) add(source, field, format string, args ...any) {
	*is = append(*is, Issue{Source: source, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	return &ValidationError{Issues: append([]Issue(nil), is...)}
}
