package runner

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_PropagatesExitCode(t *testing.T) {
	sup := NewSupervisor(testLogger(), []string{"sh", "-c", "exit 3"})
	code, err := sup.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.False(t, sup.Running())
	assert.Equal(t, 3, sup.ExitCode())
}

func TestSupervisor_SuccessfulCommand(t *testing.T) {
	sup := NewSupervisor(testLogger(), []string{"true"})
	code, err := sup.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.NotZero(t, sup.PID())
	assert.False(t, sup.StartedAt().IsZero())
}

func TestSupervisor_ChildSeesExportedEnvironment(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "abc")

	sup := NewSupervisor(testLogger(), []string{"sh", "-c", `test "$DISCORD_BOT_TOKEN" = abc`})
	code, err := sup.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestSupervisor_StartFailure(t *testing.T) {
	sup := NewSupervisor(testLogger(), []string{"/nonexistent/botstrap-test-binary"})
	_, err := sup.Run(context.Background())
	assert.Error(t, err)
	assert.False(t, sup.Running())
}

func TestSupervisor_NoCommand(t *testing.T) {
	sup := NewSupervisor(testLogger(), nil)
	_, err := sup.Run(context.Background())
	assert.Error(t, err)
}

func TestSupervisor_ForwardsSignals(t *testing.T) {
	sup := NewSupervisor(testLogger(), []string{"sleep", "30"})

	type result struct {
		code int
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		code, err := sup.Run(context.Background())
		resCh <- result{code, err}
	}()

	// Wait for the child to come up.
	deadline := time.Now().Add(5 * time.Second)
	for !sup.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, sup.Running(), "child never started")

	// Signal ourselves; the supervisor must relay it to the sleep child,
	// whose default disposition for SIGUSR1 is to terminate.
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case res := <-resCh:
		require.NoError(t, res.err)
		assert.Equal(t, 128+int(syscall.SIGUSR1), res.code)
		assert.GreaterOrEqual(t, sup.SignalsForwarded(), int64(1))
	case <-time.After(10 * time.Second):
		t.Fatal("supervisor did not return after signal")
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
}
