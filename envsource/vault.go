package envsource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"

	"github.com/apexfleet/botstrap/interfaces"
)

// VaultSource reads variables from a HashiCorp Vault KV v2 secret. Every
// string field of the secret becomes one candidate environment variable.
type VaultSource struct {
	client      *api.Client
	mountPath   string
	secretPath  string
	log         *slog.Logger
	locationURI string
}

// NewVaultSource creates a new Vault env source.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: KV v2 mount path (e.g. "secret")
//   - secretPath: path of the secret within the mount (e.g. "apex-bots")
//   - token: Vault token; falls back to the VAULT_TOKEN environment variable
//   - log: structured logger
func NewVaultSource(address, mountPath, secretPath, token string, log *slog.Logger) (*VaultSource, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	client.SetToken(token)

	mountPath = strings.Trim(mountPath, "/")
	secretPath = strings.Trim(secretPath, "/")

	return &VaultSource{
		client:     client,
		mountPath:  mountPath,
		secretPath: secretPath,
		log:        log,
		// Token deliberately left out of the tracking URI.
		locationURI: fmt.Sprintf("vault://%s/%s/%s", config.Address, mountPath, secretPath),
	}, nil
}

// Fetch reads the secret and returns its string fields as variables.
// Non-string fields are skipped with a warning.
func (s *VaultSource) Fetch(ctx context.Context) (map[string]string, error) {
	// Vault KV v2 path structure.
	path := fmt.Sprintf("%s/data/%s", s.mountPath, s.secretPath)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading Vault secret %s: %w", path, err)
	}
	if secret == nil {
		return nil, fmt.Errorf("Vault secret %s not found", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("Vault secret %s has no KV v2 data", path)
	}

	vars := make(map[string]string, len(data))
	for k, raw := range data {
		v, ok := raw.(string)
		if !ok {
			s.log.Warn("Skipping non-string Vault secret field", "field", k)
			continue
		}
		vars[k] = v
	}

	s.log.Debug("Loaded Vault secret", "path", path, "vars", len(vars))
	return vars, nil
}

func (s *VaultSource) Name() string {
	return "vault"
}

func (s *VaultSource) LocationURI() string {
	return s.locationURI
}

// createVaultSource creates a Vault source from a parsed URI.
// URI format: vault://[token@]host:port/mount/secret-path[?scheme=http]
func (f *Factory) createVaultSource(u *url.URL) (interfaces.EnvSource, error) {
	if u.Host == "" {
		return nil, fmt.Errorf("%w: vault source requires a host", interfaces.ErrInvalidLocationURI)
	}

	scheme := "https"
	if v := u.Query().Get("scheme"); v != "" {
		scheme = v
	}
	address := fmt.Sprintf("%s://%s", scheme, u.Host)

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: vault source path must be /mount/secret-path", interfaces.ErrInvalidLocationURI)
	}

	token := ""
	if u.User != nil {
		token = u.User.Username()
	}

	return NewVaultSource(address, parts[0], parts[1], token, f.log)
}
