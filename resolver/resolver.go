// Package resolver implements the conditional secret mapping step of the
// container entrypoint: copying instance-qualified secrets into the canonical
// slots the downstream program expects.
//
// The mapping operates on explicit maps rather than the process environment,
// so it can be exercised without mutating real process state. Callers apply
// the returned exports themselves before handing off.
package resolver

import (
	"log/slog"

	"github.com/apexfleet/botstrap/instance"
	"github.com/apexfleet/botstrap/interfaces"
)

// Resolution is the outcome of the mapping step.
type Resolution struct {
	// Exports holds canonical slot values to add to the environment.
	Exports map[string]string

	// Skipped is true when the canonical token was already present and the
	// whole mapping step was bypassed.
	Skipped bool

	// Missing lists qualified variable names that were absent for a known
	// instance. Informational only; missing secrets are never fatal here.
	Missing []string
}

// Resolve maps instance-qualified secrets onto canonical slots for the named
// instance.
//
// A pre-set DISCORD_BOT_TOKEN short-circuits the entire step: externally
// provided values always win, and in that case not even PLAYER_UID is mapped.
// Otherwise each mapping in the instance table is attempted independently; a
// missing qualified variable produces a warning and leaves that one slot
// unset without affecting the others. Empty values are treated as unset.
//
// Unknown instance names are tolerated: a warning is logged and no slots are
// mapped, since there is no qualified-name scheme for them.
func Resolve(log *slog.Logger, env map[string]string, name interfaces.InstanceName) Resolution {
	res := Resolution{Exports: make(map[string]string)}

	if v := env[instance.SlotDiscordBotToken]; v != "" {
		log.Info("canonical secrets already provided, using them as-is",
			"slot", instance.SlotDiscordBotToken)
		res.Skipped = true
		return res
	}

	inst, ok := instance.Lookup(name)
	if !ok {
		log.Warn("unknown instance, no secret mapping applied",
			"instance", name.String(),
			"known", instance.KnownNames())
		return res
	}

	for _, m := range inst.Mappings {
		v := env[m.Qualified]
		if v == "" {
			log.Warn("qualified secret not set, leaving canonical slot empty",
				"instance", name.String(),
				"qualified", m.Qualified,
				"slot", m.Canonical)
			res.Missing = append(res.Missing, m.Qualified)
			continue
		}
		res.Exports[m.Canonical] = v
		log.Info("mapped instance secret",
			"instance", name.String(),
			"qualified", m.Qualified,
			"slot", m.Canonical)
	}

	return res
}
