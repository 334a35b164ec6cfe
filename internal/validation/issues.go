// Package validation holds the pure rule checks that gate every write.
// Checks never panic and have no side effects; they report all rule
// violations at once as a list of field-level issues.
package validation

import (
	"fmt"
	"strings"
)

// Issue is a single rule violation, addressed by field path.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Issues accumulates violations for one candidate record.
type Issues []Issue

// Add appends a violation for the given field path.
func (is *Issues) Add(path, format string, args ...any) {
	*is = append(*is, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// OK reports whether no violations were recorded.
func (is Issues) OK() bool { return len(is) == 0 }

func (is Issues) String() string {
	parts := make([]string, len(is))
	for i, issue := range is {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}
