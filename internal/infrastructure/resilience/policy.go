package resilience

import "time"

type Config struct {
	// MaxAttempts bounds timeout-classified attempts, including the first.
	MaxAttempts int
	// RateLimitMaxAttempts bounds rate-limit-classified attempts separately;
	// a 429 always retries, on a larger budget than plain timeouts.
	RateLimitMaxAttempts int
	// TimeoutBackoffUnit is multiplied by the attempt index + 1.
	TimeoutBackoffUnit time.Duration
	// RateLimitBackoffUnit is multiplied by the attempt index + 1.
	RateLimitBackoffUnit time.Duration

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:          2,
		RateLimitMaxAttempts: 5,
		TimeoutBackoffUnit:   1 * time.Second,
		RateLimitBackoffUnit: 2 * time.Second,

		BreakerEnabled:          true,
		BreakerMinRequests:      10,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      30 * time.Second,
		BreakerHalfOpenMaxCalls: 2,
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()

	if out.MaxAttempts <= 0 {
		out.MaxAttempts = def.MaxAttempts
	}
	if out.RateLimitMaxAttempts <= 0 {
		out.RateLimitMaxAttempts = 2*out.MaxAttempts + 1
	}
	if out.TimeoutBackoffUnit <= 0 {
		out.TimeoutBackoffUnit = def.TimeoutBackoffUnit
	}
	if out.RateLimitBackoffUnit <= 0 {
		out.RateLimitBackoffUnit = def.RateLimitBackoffUnit
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
