package envsource

import (
	"context"
	"os"
	"strings"
)

// ProcessSource exposes the live process environment as an env source.
// It is always listed first in a multi-source so that platform-injected
// variables take precedence over any other source.
type ProcessSource struct{}

// NewProcessSource creates a source backed by the current process environment.
func NewProcessSource() *ProcessSource {
	return &ProcessSource{}
}

// Fetch returns a snapshot of the process environment.
func (s *ProcessSource) Fetch(_ context.Context) (map[string]string, error) {
	environ := os.Environ()
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	return vars, nil
}

func (s *ProcessSource) Name() string {
	return "process"
}

func (s *ProcessSource) LocationURI() string {
	return "process://"
}
