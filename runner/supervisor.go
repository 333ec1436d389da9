package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/atomic"
)

// forwardedSignals are relayed to the child process. SIGCHLD and runtime
// internals are deliberately not in the list.
var forwardedSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
	syscall.SIGQUIT,
	syscall.SIGUSR1,
	syscall.SIGUSR2,
}

// Supervisor runs the downstream command as a subprocess with inherited
// stdio, forwarding signals and reporting the child's exit code. Used
// instead of Exec when a wrapper process must remain to serve status and
// metrics endpoints.
type Supervisor struct {
	log  *slog.Logger
	argv []string

	childRunning     atomic.Bool
	childPID         atomic.Int64
	startedAt        atomic.Time
	exitCode         atomic.Int64
	signalsForwarded atomic.Int64
}

// NewSupervisor creates a supervisor for the given command and arguments.
func NewSupervisor(log *slog.Logger, argv []string) *Supervisor {
	return &Supervisor{log: log, argv: argv}
}

// Running reports whether the child process is currently alive.
func (s *Supervisor) Running() bool { return s.childRunning.Load() }

// PID returns the child's process id, or 0 before it starts.
func (s *Supervisor) PID() int { return int(s.childPID.Load()) }

// StartedAt returns when the child started.
func (s *Supervisor) StartedAt() time.Time { return s.startedAt.Load() }

// ExitCode returns the child's exit code once it has exited.
func (s *Supervisor) ExitCode() int { return int(s.exitCode.Load()) }

// SignalsForwarded returns how many signals were relayed to the child.
func (s *Supervisor) SignalsForwarded() int64 { return s.signalsForwarded.Load() }

// Run starts the child and blocks until it exits, returning its exit code.
// Signals received by the wrapper are forwarded to the child; a child killed
// by a signal yields 128 plus the signal number, matching shell convention.
// The error return covers start failures only.
func (s *Supervisor) Run(ctx context.Context) (int, error) {
	if len(s.argv) == 0 {
		return -1, fmt.Errorf("no command to run")
	}

	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting %q: %w", s.argv[0], err)
	}

	s.childPID.Store(int64(cmd.Process.Pid))
	s.startedAt.Store(time.Now())
	s.log.Info("Child process started", "pid", cmd.Process.Pid, "command", s.argv[0])

	// Signal forwarding must be in place before the supervisor reports the
	// child as running.
	sigCh := make(chan os.Signal, 8)
	signal.Notify(sigCh, forwardedSignals...)
	defer signal.Stop(sigCh)
	s.childRunning.Store(true)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-sigCh:
			s.signalsForwarded.Inc()
			s.log.Info("Forwarding signal to child", "signal", sig.String(), "pid", cmd.Process.Pid)
			if err := cmd.Process.Signal(sig); err != nil {
				s.log.Warn("Failed to forward signal", "signal", sig.String(), "err", err)
			}
		case err := <-done:
			code := exitCode(err)
			s.childRunning.Store(false)
			s.exitCode.Store(int64(code))
			s.log.Info("Child process exited", "pid", cmd.Process.Pid, "exitCode", code)
			return code, nil
		}
	}
}

// exitCode translates a cmd.Wait error into the code the container should
// exit with.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		return exitErr.ExitCode()
	}
	return 1
}
