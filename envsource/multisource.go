package envsource

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/apexfleet/botstrap/interfaces"
)

var errAllSourcesFailed = errors.New("all env sources failed")

// MultiSource merges several env sources into one environment map. Sources
// are consulted in order and merged first-wins: once a variable is present it
// is never overwritten by a later source. A source that fails to fetch is
// skipped with a warning.
type MultiSource struct {
	sources []interfaces.EnvSource
	log     *slog.Logger
}

// NewMultiSource creates a multi-source over the given sources, in
// precedence order.
func NewMultiSource(sources []interfaces.EnvSource, log *slog.Logger) *MultiSource {
	return &MultiSource{sources: sources, log: log}
}

// Fetch merges all sources. It only fails when every source failed.
func (m *MultiSource) Fetch(ctx context.Context) (map[string]string, error) {
	merged := make(map[string]string)
	fetched := 0

	for _, src := range m.sources {
		vars, err := src.Fetch(ctx)
		if err != nil {
			m.log.Warn("Env source failed, skipping",
				"source", src.Name(),
				"locationURI", src.LocationURI(),
				"err", err)
			continue
		}
		fetched++

		added := 0
		for k, v := range vars {
			if _, exists := merged[k]; !exists {
				merged[k] = v
				added++
			}
		}
		m.log.Debug("Merged env source",
			"source", src.Name(),
			"vars", len(vars),
			"added", added)
	}

	if fetched == 0 && len(m.sources) > 0 {
		return nil, errAllSourcesFailed
	}
	return merged, nil
}

func (m *MultiSource) Name() string {
	return "multi"
}

func (m *MultiSource) LocationURI() string {
	uris := make([]string, 0, len(m.sources))
	for _, src := range m.sources {
		uris = append(uris, src.LocationURI())
	}
	return strings.Join(uris, ",")
}
