package generation

import "time"

// RetryPolicy controls how providers retry transient failures.
// Delay receives the 1-based number of the attempt that just failed.
type RetryPolicy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
}

// FixedDelay returns a policy with a constant inter-attempt delay.
func FixedDelay(maxAttempts int, delay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Delay:       func(int) time.Duration { return delay },
	}
}

// NoDelay returns a policy that retries immediately. Intended for tests.
func NoDelay(maxAttempts int) RetryPolicy {
	return FixedDelay(maxAttempts, 0)
}

// Normalize clamps nonsensical values so a zero policy still makes one
// attempt and never panics on a nil delay function.
func (p RetryPolicy) Normalize() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Delay == nil {
		p.Delay = func(int) time.Duration { return 0 }
	}
	return p
}
