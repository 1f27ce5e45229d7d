package catalog

import (
	"context"
	"crypto/sha256"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"travelagg/pkg/auth"
	"travelagg/pkg/logger"
)

// Provider supplies the current catalog snapshot.
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// StaticProvider always returns the same snapshot.
type StaticProvider struct {
	snap *Snapshot
}

func NewStaticProvider(snap *Snapshot) *StaticProvider {
	return &StaticProvider{snap: snap}
}

func (p *StaticProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	return p.snap, nil
}

type loadedSnapshot struct {
	snap     *Snapshot
	loadedAt time.Time
}

// CachedProvider keeps the last snapshot of source in memory and reloads it at
// most once per refresh interval. A failed reload keeps serving the previous
// snapshot; only a cold start surfaces the error. ErrAccessDenied is the
// exception: it drops the snapshot and is always returned.
type CachedProvider struct {
	source  Provider
	refresh time.Duration
	logger  logger.Client
	now     func() time.Time

	mu      sync.Mutex
	current atomic.Pointer[loadedSnapshot]
}

func NewCachedProvider(source Provider, refresh time.Duration, logger logger.Client) *CachedProvider {
	return &CachedProvider{
		source:  source,
		refresh: refresh,
		logger:  logger,
		now:     time.Now,
	}
}

func (p *CachedProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	if cur := p.current.Load(); cur != nil && p.fresh(cur) {
		return cur.snap, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// another caller may have reloaded while we waited
	cur := p.current.Load()
	if cur != nil && p.fresh(cur) {
		return cur.snap, nil
	}

	start := p.now()
	snap, err := p.source.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			p.current.Store(nil)
			return nil, err
		}
		if cur != nil {
			p.logger.Warn("Catalog reload failed, serving previous snapshot",
				logger.Err(err),
				logger.Field{Key: "fingerprint", Value: cur.snap.Fingerprint()},
				logger.Field{Key: "age", Value: p.now().Sub(cur.loadedAt)},
			)
			return cur.snap, nil
		}
		return nil, err
	}

	p.current.Store(&loadedSnapshot{snap: snap, loadedAt: p.now()})
	p.logger.Info("Catalog snapshot loaded",
		logger.Field{Key: "fingerprint", Value: snap.Fingerprint()},
		logger.Field{Key: "packages", Value: len(snap.Packages())},
		logger.Field{Key: "took", Value: p.now().Sub(start)},
	)
	return snap, nil
}

// Invalidate forces the next Snapshot call to reload from source.
func (p *CachedProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur := p.current.Load(); cur != nil {
		p.current.Store(&loadedSnapshot{snap: cur.snap})
	}
}

func (p *CachedProvider) fresh(s *loadedSnapshot) bool {
	return !s.loadedAt.IsZero() && p.now().Sub(s.loadedAt) < p.refresh
}

// TokenScopedProvider keeps one CachedProvider per caller token, so a source
// that checks tokens sees every token at least once per refresh interval and
// a snapshot loaded for one caller is never served to another. Calls without
// a token share one anonymous entry.
type TokenScopedProvider struct {
	source  Provider
	refresh time.Duration
	idle    time.Duration
	logger  logger.Client
	now     func() time.Time

	mu        sync.Mutex
	entries   map[[sha256.Size]byte]*tokenEntry
	lastPrune time.Time
}

type tokenEntry struct {
	provider *CachedProvider
	lastUsed time.Time
}

// NewTokenScopedProvider drops entries unused for ten refresh intervals.
func NewTokenScopedProvider(source Provider, refresh time.Duration, logger logger.Client) *TokenScopedProvider {
	return &TokenScopedProvider{
		source:  source,
		refresh: refresh,
		idle:    max(10*refresh, time.Minute),
		logger:  logger,
		now:     time.Now,
		entries: make(map[[sha256.Size]byte]*tokenEntry),
	}
}

func (p *TokenScopedProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	token, _ := auth.TokenFromContext(ctx)
	return p.entry(token).Snapshot(ctx)
}

func (p *TokenScopedProvider) entry(token string) *CachedProvider {
	key := sha256.Sum256([]byte(token))

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastPrune) >= p.idle {
		for k, e := range p.entries {
			if now.Sub(e.lastUsed) >= p.idle {
				delete(p.entries, k)
			}
		}
		p.lastPrune = now
	}

	e, ok := p.entries[key]
	if !ok {
		cp := NewCachedProvider(p.source, p.refresh, p.logger)
		cp.now = p.now
		e = &tokenEntry{provider: cp}
		p.entries[key] = e
	}
	e.lastUsed = now
	return e.provider
}

// Len reports how many tokens currently have a cached snapshot.
func (p *TokenScopedProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
