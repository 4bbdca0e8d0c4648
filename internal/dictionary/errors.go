package dictionary

import (
	"fmt"
	"strings"
)

// LoadError reports a dictionary that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	path := e.Path
	if path == "" {
		path = "embedded dictionary"
	}
	return fmt.Sprintf("loading skill dictionary %s: %v", path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError lists every integrity problem found in a dictionary.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid skill dictionary:")
	for i, issue := range e.Issues {
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, issue))
	}
	return sb.String()
}
