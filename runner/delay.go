package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/apexfleet/botstrap/interfaces"
)

// ParseStartupDelay validates a raw STARTUP_DELAY value. An empty value
// means no delay. Anything else must be a non-negative integer number of
// seconds; the original entrypoint never checked this, so malformed values
// are rejected explicitly here before any other work happens.
func ParseStartupDelay(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer number of seconds", interfaces.ErrInvalidStartupDelay, raw)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %d is negative", interfaces.ErrInvalidStartupDelay, seconds)
	}

	return time.Duration(seconds) * time.Second, nil
}

// Wait blocks for the configured startup delay, logging before and after the
// pause. A zero delay logs the default and returns immediately. The wait
// aborts when ctx is cancelled (the process received a termination signal),
// in which case the caller must not hand off.
func Wait(ctx context.Context, log *slog.Logger, delay time.Duration) error {
	if delay <= 0 {
		log.Info("No startup delay configured, starting immediately")
		return nil
	}

	log.Info("Delaying startup", "seconds", int(delay.Seconds()))

	select {
	case <-ctx.Done():
		log.Info("Startup delay interrupted", "err", ctx.Err())
		return ctx.Err()
	case <-time.After(delay):
	}

	log.Info("Startup delay complete")
	return nil
}
