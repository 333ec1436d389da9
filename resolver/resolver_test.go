package resolver

import (
	"io"
	"log/slog"
	"testing"

	"github.com/apexfleet/botstrap/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_PlayerInstanceMapsBothSlots(t *testing.T) {
	env := map[string]string{
		"DISCORD_BOT_TOKEN_DAAN": "abc",
		"PLAYER_UID_DAAN":        "123",
		"STARTUP_DELAY":          "10",
	}

	res := Resolve(discardLogger(), env, "apex_daan")

	require.False(t, res.Skipped)
	assert.Equal(t, map[string]string{
		instance.SlotDiscordBotToken: "abc",
		instance.SlotPlayerUID:       "123",
	}, res.Exports)
	assert.Empty(t, res.Missing)
}

func TestResolve_MapBotMapsSingleSlot(t *testing.T) {
	env := map[string]string{
		"DISCORD_BOT_TOKEN_MAP": "map-token",
		// Qualified player variables for other instances must be ignored.
		"PLAYER_UID_DAAN": "123",
	}

	res := Resolve(discardLogger(), env, "apex")

	require.False(t, res.Skipped)
	assert.Equal(t, map[string]string{
		instance.SlotDiscordBotToken: "map-token",
	}, res.Exports)
	assert.Empty(t, res.Missing)
}

func TestResolve_PresetTokenSkipsEverything(t *testing.T) {
	env := map[string]string{
		instance.SlotDiscordBotToken: "preset",
		"DISCORD_BOT_TOKEN_DAAN":     "abc",
		"PLAYER_UID_DAAN":            "123",
	}

	res := Resolve(discardLogger(), env, "apex_daan")

	assert.True(t, res.Skipped)
	// The skip covers all branches: PLAYER_UID is not mapped either.
	assert.Empty(t, res.Exports)
	assert.Empty(t, res.Missing)
}

func TestResolve_MappingsAreIndependent(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		exports map[string]string
		missing []string
	}{
		{
			name: "token present, uid missing",
			env:  map[string]string{"DISCORD_BOT_TOKEN_EBEN": "tok"},
			exports: map[string]string{
				instance.SlotDiscordBotToken: "tok",
			},
			missing: []string{"PLAYER_UID_EBEN"},
		},
		{
			name: "uid present, token missing",
			env:  map[string]string{"PLAYER_UID_EBEN": "42"},
			exports: map[string]string{
				instance.SlotPlayerUID: "42",
			},
			missing: []string{"DISCORD_BOT_TOKEN_EBEN"},
		},
		{
			name:    "both missing",
			env:     map[string]string{},
			exports: map[string]string{},
			missing: []string{"DISCORD_BOT_TOKEN_EBEN", "PLAYER_UID_EBEN"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(discardLogger(), tc.env, "apex_eben")
			require.False(t, res.Skipped)
			assert.Equal(t, tc.exports, res.Exports)
			assert.Equal(t, tc.missing, res.Missing)
		})
	}
}

func TestResolve_EmptyQualifiedValueTreatedAsUnset(t *testing.T) {
	env := map[string]string{
		"DISCORD_BOT_TOKEN_NINO": "",
		"PLAYER_UID_NINO":        "77",
	}

	res := Resolve(discardLogger(), env, "apex_nino")

	require.False(t, res.Skipped)
	assert.Equal(t, map[string]string{instance.SlotPlayerUID: "77"}, res.Exports)
	assert.Equal(t, []string{"DISCORD_BOT_TOKEN_NINO"}, res.Missing)
}

func TestResolve_UnknownInstanceMapsNothing(t *testing.T) {
	env := map[string]string{
		"DISCORD_BOT_TOKEN_DAAN": "abc",
		"PLAYER_UID_DAAN":        "123",
	}

	res := Resolve(discardLogger(), env, "apex_someone_else")

	assert.False(t, res.Skipped)
	assert.Empty(t, res.Exports)
	assert.Empty(t, res.Missing)
}

func TestResolve_ApexAPIKeyUntouched(t *testing.T) {
	env := map[string]string{
		instance.SlotApexAPIKey:  "key",
		"DISCORD_BOT_TOKEN_DAAN": "abc",
	}

	res := Resolve(discardLogger(), env, "apex_daan")

	_, mapped := res.Exports[instance.SlotApexAPIKey]
	assert.False(t, mapped)
}
