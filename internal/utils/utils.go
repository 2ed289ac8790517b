package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor sleeps for d, returning early with the context error when ctx is
// canceled. Used as the backoff between retried LLM API calls.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
