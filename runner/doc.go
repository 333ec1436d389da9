// Package runner implements the delay and handoff steps of the container
// entrypoint.
//
// The startup delay orders sibling instances without any coordination
// between them: each container simply sleeps its configured number of
// seconds before launch. The delay value is validated up front; a malformed
// STARTUP_DELAY is the only fatal configuration error in the entrypoint.
//
// Handoff comes in two flavors. Exec replaces the process image outright, so
// the downstream program's exit code and signal handling become the
// container's own. Supervisor approximates the same observable behavior when
// a wrapper process needs to stay around (to serve status and metrics): it
// spawns the command with inherited stdio, forwards termination and user
// signals to it, and reports its exit code.
package runner
