package ratelimit

// Config holds the configuration for rate limiting.
type Config struct {
	Capacity   int  // Token bucket capacity (burst allowance)
	RefillRate int  // Tokens added per second (sustained rate)
	Enabled    bool // Whether rate limiting is active
}

// Limiter guards the serving endpoint with a single token bucket.
//
// Example usage:
//
//	limiter := NewLimiter(Config{Capacity: 100, RefillRate: 10, Enabled: true})
//	if limiter.Allow() {
//	    // Serve the request
//	} else {
//	    // Rate limited - reject the request
//	}
type Limiter struct {
	bucket *TokenBucket
	config Config
}

// NewLimiter creates a limiter with the given configuration.
func NewLimiter(config Config) *Limiter {
	return &Limiter{
		bucket: NewTokenBucket(config.Capacity, config.RefillRate),
		config: config,
	}
}

// Allow reports whether the next request should be served. It always
// returns true when rate limiting is disabled via config.
func (l *Limiter) Allow() bool {
	if !l.config.Enabled {
		return true
	}
	return l.bucket.Allow()
}

// Stats returns the rate limited and total request counts.
func (l *Limiter) Stats() (hits, total int64) {
	return l.bucket.Stats()
}
