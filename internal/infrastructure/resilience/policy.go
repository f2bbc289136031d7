package resilience

import "time"

const defaultLookupBudget = 3 * time.Second

// Config tunes the retries and per-operation breakers of one Executor.
type Config struct {
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	RetryMultiplier     float64

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

// ForLookupBudget sizes the policy from the time one name lookup may take.
// Retry sleeps stay a small fraction of the budget so a suggestion still
// arrives while the user is typing, and a tripped breaker stays open for a
// few budgets before probing again.
func ForLookupBudget(budget time.Duration) Config {
	if budget <= 0 {
		budget = defaultLookupBudget
	}
	return Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: budget / 60,
		RetryMaxBackoff:     budget / 15,
		RetryMultiplier:     2.0,

		BreakerEnabled:          true,
		BreakerMinRequests:      10,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      5 * budget,
		BreakerHalfOpenMaxCalls: 2,
	}
}

// RetrySleep is the longest total time the executor sleeps between attempts
// of one call.
func (c Config) RetrySleep() time.Duration {
	c = c.normalize()
	var total time.Duration
	backoff := c.RetryInitialBackoff
	for attempt := 1; attempt < c.RetryMaxAttempts; attempt++ {
		total += min(backoff, c.RetryMaxBackoff)
		backoff = min(time.Duration(float64(backoff)*c.RetryMultiplier), c.RetryMaxBackoff)
	}
	return total
}

func (c Config) normalize() Config {
	out := c
	def := ForLookupBudget(defaultLookupBudget)

	if out.RetryMaxAttempts <= 0 {
		out.RetryMaxAttempts = def.RetryMaxAttempts
	}
	if out.RetryInitialBackoff <= 0 {
		out.RetryInitialBackoff = def.RetryInitialBackoff
	}
	if out.RetryMaxBackoff <= 0 {
		out.RetryMaxBackoff = def.RetryMaxBackoff
	}
	out.RetryMaxBackoff = max(out.RetryMaxBackoff, out.RetryInitialBackoff)
	if out.RetryMultiplier < 1.0 {
		out.RetryMultiplier = def.RetryMultiplier
	}

	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerOpenTimeout <= 0 {
		out.BreakerOpenTimeout = def.BreakerOpenTimeout
	}
	if out.BreakerHalfOpenMaxCalls == 0 {
		out.BreakerHalfOpenMaxCalls = def.BreakerHalfOpenMaxCalls
	}
	return out
}
