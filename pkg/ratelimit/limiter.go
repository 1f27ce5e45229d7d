package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key (client IP or user).
type KeyedLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	cfg     Config
	now     func() time.Time
}

func NewKeyedLimiter(cfg Config) *KeyedLimiter {
	if cfg.RequestsPerSecond <= 0 || cfg.BurstSize <= 0 {
		cfg = DefaultConfig()
	}
	return &KeyedLimiter{
		clients: make(map[string]*client),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (k *KeyedLimiter) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	c, ok := k.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(k.cfg.RequestsPerSecond), k.cfg.BurstSize)}
		k.clients[key] = c
	}
	c.lastSeen = k.now()
	return c.limiter
}

// Allow reports whether key may proceed now.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.limiter(key).AllowN(k.now(), 1)
}

// Prune forgets keys idle for longer than idle.
func (k *KeyedLimiter) Prune(idle time.Duration) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := k.now().Add(-idle)
	removed := 0
	for key, c := range k.clients {
		if c.lastSeen.Before(cutoff) {
			delete(k.clients, key)
			removed++
		}
	}
	return removed
}
