// Package interfaces defines the core types and contracts shared across the
// entrypoint resolver: instance identity, environment source locations, and
// the sentinel errors reported to callers.
package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// InstanceName identifies one deployed configuration of the downstream
// program, as carried by the APP_DIR environment variable (e.g. "apex_daan").
type InstanceName string

func (n InstanceName) String() string { return string(n) }

// SourceLocation is a URI describing where an environment source lives.
// The format is [scheme]://[auth@]host[:port][/path][?params], for example
// file:///etc/bot/.env or vault://vault.example.com:8200/secret/bots.
type SourceLocation string

// NewSourceLocation validates a raw location URI. The scheme is mandatory;
// which schemes are actually supported is decided by the source factory.
func NewSourceLocation(raw string) (SourceLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("%w: missing scheme in %q", ErrInvalidLocationURI, raw)
	}
	return SourceLocation(raw), nil
}

// EnvSource supplies candidate environment variables for the downstream
// program. Sources are read-only; values fetched from a source never
// overwrite variables already provided by an earlier source.
type EnvSource interface {
	// Fetch returns the variables this source provides.
	Fetch(ctx context.Context) (map[string]string, error)

	// Name returns a short identifier for logging.
	Name() string

	// LocationURI returns the URI this source was created from, with any
	// credentials redacted.
	LocationURI() string
}

var (
	// ErrInvalidLocationURI indicates a malformed env source location URI.
	ErrInvalidLocationURI = errors.New("invalid env source location URI")

	// ErrInvalidStartupDelay indicates a STARTUP_DELAY value that is not a
	// non-negative integer number of seconds.
	ErrInvalidStartupDelay = errors.New("invalid startup delay")
)
