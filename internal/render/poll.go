package render

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultPollInterval and DefaultMaxAttempts give a hard ceiling of
	// roughly sixty seconds per job. Fixed rather than adaptive: the caller
	// is a synchronous HTTP request and predictability beats efficiency.
	DefaultPollInterval = 2500 * time.Millisecond
	DefaultMaxAttempts  = 24
)

// StatusFunc fetches the current provider status for a job along with the
// provider payload, which is meaningful only once the status is terminal.
type StatusFunc func(ctx context.Context) (Status, any, error)

// Poller drives a submitted job to a terminal state by querying provider
// status on a fixed schedule. It is the only busy-wait in the system and
// blocks the owning request until it resolves.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Logger      zerolog.Logger

	// Sleep is injectable so tests can drive the loop with a fake clock.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller returns a Poller with the given schedule, falling back to the
// defaults for non-positive values.
func NewPoller(interval time.Duration, maxAttempts int, logger zerolog.Logger) Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return Poller{Interval: interval, MaxAttempts: maxAttempts, Logger: logger}
}

// PollUntilTerminal waits the configured interval, queries status, and
// repeats until the job completes, the provider reports failure, or the
// attempt budget runs out.
//
// A transport error during a status check is transient: it consumes the
// attempt and the loop continues. A provider-reported failed status is not:
// the provider gave up, so the loop stops immediately with
// ErrGenerationFailed. Budget exhaustion yields ErrPollTimeout wrapping the
// last observed error, if any.
func (p Poller) PollUntilTerminal(ctx context.Context, jobID string, fetch StatusFunc) (any, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := sleep(ctx, p.Interval); err != nil {
			return nil, fmt.Errorf("poll wait: %w", err)
		}

		status, payload, err := fetch(ctx)
		if err != nil {
			lastErr = err
			p.Logger.Warn().
				Str("job_id", jobID).
				Int("attempt", attempt).
				Err(err).
				Msg("status check failed, retrying")
			continue
		}

		p.Logger.Debug().
			Str("job_id", jobID).
			Int("attempt", attempt).
			Str("status", string(status)).
			Msg("poll attempt")

		switch status {
		case StatusCompleted:
			return payload, nil
		case StatusFailed:
			return nil, fmt.Errorf("job %s: %w", jobID, ErrGenerationFailed)
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("job %s after %d attempts (last error: %v): %w", jobID, p.MaxAttempts, lastErr, ErrPollTimeout)
	}
	return nil, fmt.Errorf("job %s after %d attempts: %w", jobID, p.MaxAttempts, ErrPollTimeout)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
