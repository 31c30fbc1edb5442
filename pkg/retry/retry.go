package retry

import (
	"time"
)

type fn func() error
type shouldRetry func(err error, attempt int) bool

// Always retries every error until the attempt budget runs out.
func Always(error, int) bool { return true }

// WrapWithRetry wraps the given function and retries it while shouldRetry
// returns true, up to maxAttempts calls, with a small linear backoff
// between attempts. The last error is returned.
func WrapWithRetry(f fn, shouldRetry shouldRetry, maxAttempts int) func() error {
	return func() error {
		var err error

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err = f()
			if err == nil {
				return nil
			}

			if attempt == maxAttempts || !shouldRetry(err, attempt) {
				return err
			}

			time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
		}

		return err
	}
}
