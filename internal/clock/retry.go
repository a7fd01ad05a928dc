package clock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Retry calls fn until it succeeds, attempts are exhausted or ctx is done,
// sleeping delay between calls. attempts below one are treated as one.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if sleepErr := SleepWithContext(ctx, delay); sleepErr != nil {
			return errors.Join(err, sleepErr)
		}
	}

	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
