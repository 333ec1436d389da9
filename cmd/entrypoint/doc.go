// Package main (cmd/entrypoint) implements the container entrypoint for the
// Apex bot fleet.
//
// The entrypoint runs before the downstream bot process. It resolves the
// instance's secrets, optionally delays startup to stagger sibling
// containers, and then hands control to the bot:
//
//  1. Validate STARTUP_DELAY. A non-numeric or negative value is a
//     configuration error reported before anything else happens.
//  2. Load the environment. The process environment is always consulted
//     first; additional sources (dotenv file, Vault KV secret, S3 object)
//     can be given as --env-source URIs and never override platform-injected
//     variables.
//  3. Map secrets. If DISCORD_BOT_TOKEN is already set the whole step is
//     skipped. Otherwise the instance named by APP_DIR selects which
//     qualified variables (DISCORD_BOT_TOKEN_DAAN, PLAYER_UID_DAAN, ...)
//     are copied into the canonical slots the bot reads. Missing qualified
//     secrets and unknown instances produce warnings only; the bot itself
//     decides whether it can start without credentials.
//  4. Delay. STARTUP_DELAY seconds, with diagnostics before and after.
//  5. Hand off. By default the process image is replaced outright, so the
//     bot inherits the container's process identity. With --supervise the
//     bot runs as a subprocess instead, with stdio inherited, signals
//     forwarded, and its exit code propagated; this mode can expose status
//     (--status-addr) and Prometheus metrics (--metrics-addr) endpoints.
//
// Example usage for a player bot:
//
//	entrypoint --app-dir=apex_daan --startup-delay=10 -- python main.py
//
// Example with an extra env source and supervision:
//
//	entrypoint --app-dir=apex \
//	    --env-source=vault://vault.internal:8200/secret/apex-bots \
//	    --supervise --status-addr=0.0.0.0:8080 \
//	    -- python main.py
package main
