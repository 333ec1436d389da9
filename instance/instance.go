// Package instance holds the closed table of known bot instances and the
// environment variable names the platform and the downstream program use.
//
// Each instance is deployed in its own container and receives its secrets
// under instance-qualified names (DISCORD_BOT_TOKEN_DAAN and so on). The
// table maps those qualified names onto the canonical slots the downstream
// program reads. Adding an instance is a data change here, not a code change
// anywhere else.
package instance

import (
	"github.com/apexfleet/botstrap/interfaces"
)

// Environment variable names consumed by the resolver itself.
const (
	EnvAppDir       = "APP_DIR"
	EnvStartupDelay = "STARTUP_DELAY"
	EnvSources      = "ENV_SOURCES"
)

// Canonical secret slots the downstream program reads directly.
// APEX_API_KEY is listed for completeness; it is never mapped, only passed
// through to the downstream program untouched.
const (
	SlotDiscordBotToken = "DISCORD_BOT_TOKEN"
	SlotPlayerUID       = "PLAYER_UID"
	SlotApexAPIKey      = "APEX_API_KEY"
)

// SecretMapping pairs a canonical slot with the platform-qualified variable
// that feeds it for one instance.
type SecretMapping struct {
	Canonical string
	Qualified string
}

// Instance describes one known deployment and its secret mappings.
type Instance struct {
	Name     interfaces.InstanceName
	Mappings []SecretMapping
}

// known is the closed set of deployed instances. The map bot carries a single
// token; the player bots each carry a token and the tracked player's UID.
var known = []Instance{
	{
		Name: "apex",
		Mappings: []SecretMapping{
			{Canonical: SlotDiscordBotToken, Qualified: "DISCORD_BOT_TOKEN_MAP"},
		},
	},
	{
		Name: "apex_daan",
		Mappings: []SecretMapping{
			{Canonical: SlotDiscordBotToken, Qualified: "DISCORD_BOT_TOKEN_DAAN"},
			{Canonical: SlotPlayerUID, Qualified: "PLAYER_UID_DAAN"},
		},
	},
	{
		Name: "apex_eben",
		Mappings: []SecretMapping{
			{Canonical: SlotDiscordBotToken, Qualified: "DISCORD_BOT_TOKEN_EBEN"},
			{Canonical: SlotPlayerUID, Qualified: "PLAYER_UID_EBEN"},
		},
	},
	{
		Name: "apex_nino",
		Mappings: []SecretMapping{
			{Canonical: SlotDiscordBotToken, Qualified: "DISCORD_BOT_TOKEN_NINO"},
			{Canonical: SlotPlayerUID, Qualified: "PLAYER_UID_NINO"},
		},
	},
}

// Lookup returns the instance record for name. The second return value is
// false for names outside the known set; callers are expected to warn and
// continue without mapping rather than fail.
func Lookup(name interfaces.InstanceName) (Instance, bool) {
	for _, inst := range known {
		if inst.Name == name {
			return inst, true
		}
	}
	return Instance{}, false
}

// KnownNames lists the known instance identifiers, for diagnostics.
func KnownNames() []string {
	names := make([]string, 0, len(known))
	for _, inst := range known {
		names = append(names, string(inst.Name))
	}
	return names
}
