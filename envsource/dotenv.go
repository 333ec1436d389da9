package envsource

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// parseDotenv parses dotenv-format data into an environment map. Keys are
// uppercased on the way out: viper normalizes keys to lower case internally,
// and environment variable names are upper case by convention anyway.
func parseDotenv(data []byte) (map[string]string, error) {
	v := viper.New()
	v.SetConfigType("env")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing dotenv data: %w", err)
	}

	vars := make(map[string]string)
	for _, key := range v.AllKeys() {
		vars[strings.ToUpper(key)] = v.GetString(key)
	}
	return vars, nil
}

// FileSource reads variables from a dotenv-format file on the local
// filesystem, the same format the downstream bots load themselves.
type FileSource struct {
	path        string
	log         *slog.Logger
	locationURI string
}

// NewFileSource creates a source backed by a dotenv file at path.
func NewFileSource(path string, log *slog.Logger) *FileSource {
	return &FileSource{
		path:        path,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", path),
	}
}

// Fetch reads and parses the dotenv file.
func (s *FileSource) Fetch(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", s.path, err)
	}

	vars, err := parseDotenv(data)
	if err != nil {
		return nil, fmt.Errorf("env file %s: %w", s.path, err)
	}

	s.log.Debug("Loaded env file", "path", s.path, "vars", len(vars))
	return vars, nil
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) LocationURI() string {
	return s.locationURI
}
