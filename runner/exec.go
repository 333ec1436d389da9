package runner

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Exec replaces the current process image with the given command, inheriting
// the (possibly mutated) process environment. On success it never returns:
// the downstream program takes over the process identity, so its exit code
// and signal handling are indistinguishable from the entrypoint's own.
func Exec(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command to exec")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("command %q not found: %w", argv[0], err)
	}

	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %q: %w", path, err)
	}
	return nil
}
