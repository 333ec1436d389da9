package envsource

import (
	"context"
	"errors"
	"testing"

	"github.com/apexfleet/botstrap/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEnvSource implements interfaces.EnvSource for testing
type MockEnvSource struct {
	mock.Mock
	name string
}

func (m *MockEnvSource) Fetch(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockEnvSource) Name() string {
	return m.name
}

func (m *MockEnvSource) LocationURI() string {
	return "mock:"
}

func asSources(mocks ...*MockEnvSource) []interfaces.EnvSource {
	out := make([]interfaces.EnvSource, len(mocks))
	for i, m := range mocks {
		out[i] = m
	}
	return out
}

func TestMultiSource_FirstWins(t *testing.T) {
	first := &MockEnvSource{name: "first"}
	first.On("Fetch", mock.Anything).Return(map[string]string{
		"DISCORD_BOT_TOKEN": "from-process",
		"APP_DIR":           "apex_daan",
	}, nil)

	second := &MockEnvSource{name: "second"}
	second.On("Fetch", mock.Anything).Return(map[string]string{
		"DISCORD_BOT_TOKEN": "from-file",
		"PLAYER_UID_DAAN":   "123",
	}, nil)

	multi := NewMultiSource(asSources(first, second), testLogger())
	merged, err := multi.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "from-process", merged["DISCORD_BOT_TOKEN"])
	assert.Equal(t, "apex_daan", merged["APP_DIR"])
	assert.Equal(t, "123", merged["PLAYER_UID_DAAN"])

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMultiSource_FailingSourceSkipped(t *testing.T) {
	failing := &MockEnvSource{name: "failing"}
	failing.On("Fetch", mock.Anything).Return(nil, errors.New("connection refused"))

	working := &MockEnvSource{name: "working"}
	working.On("Fetch", mock.Anything).Return(map[string]string{"PLAYER_UID_DAAN": "123"}, nil)

	multi := NewMultiSource(asSources(failing, working), testLogger())
	merged, err := multi.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"PLAYER_UID_DAAN": "123"}, merged)
}

func TestMultiSource_AllSourcesFailed(t *testing.T) {
	failing := &MockEnvSource{name: "failing"}
	failing.On("Fetch", mock.Anything).Return(nil, errors.New("connection refused"))

	multi := NewMultiSource(asSources(failing), testLogger())
	_, err := multi.Fetch(context.Background())
	assert.Error(t, err)
}
