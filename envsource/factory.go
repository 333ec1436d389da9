package envsource

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/apexfleet/botstrap/interfaces"
)

// Factory creates environment sources from location URIs.
type Factory struct {
	log *slog.Logger
}

// NewFactory creates a new factory instance.
func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{log: logger}
}

// SourceFor creates an environment source from a location URI.
//
// Supported schemes:
//   - process:// - the live process environment
//   - file:// - dotenv-format file on the local filesystem
//   - vault:// - HashiCorp Vault KV v2 secret
//   - s3:// - dotenv-format object on Amazon S3 or compatible storage
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (f *Factory) SourceFor(locationURI interfaces.SourceLocation) (interfaces.EnvSource, error) {
	u, err := url.Parse(string(locationURI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "process":
		return NewProcessSource(), nil
	case "file":
		return f.createFileSource(u)
	case "vault":
		return f.createVaultSource(u)
	case "s3":
		return f.createS3Source(u)
	default:
		return nil, fmt.Errorf("unsupported env source scheme: %s", u.Scheme)
	}
}

// CreateMultiSource creates a multi-source from a list of location URIs.
// Invalid locations are logged and skipped; at least one source must be
// valid. The returned source merges variables with first-wins precedence in
// the order given.
func (f *Factory) CreateMultiSource(locationURIs []interfaces.SourceLocation) (*MultiSource, error) {
	sources := make([]interfaces.EnvSource, 0, len(locationURIs))

	for _, uri := range locationURIs {
		source, err := f.SourceFor(uri)
		if err != nil {
			f.log.Warn("Failed to create env source",
				"err", err,
				slog.String("locationURI", string(uri)))
			continue
		}
		sources = append(sources, source)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no valid env sources created")
	}

	return NewMultiSource(sources, f.log), nil
}

// createFileSource creates a dotenv file source.
// URI format: file:///etc/bot/.env
func (f *Factory) createFileSource(u *url.URL) (interfaces.EnvSource, error) {
	path := u.Path
	if u.Host != "" {
		// Tolerate file://relative/path by joining host and path.
		path = u.Host + u.Path
	}
	if path == "" {
		return nil, fmt.Errorf("%w: file source requires a path", interfaces.ErrInvalidLocationURI)
	}
	return NewFileSource(path, f.log), nil
}
