package api

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/patrickwarner/bannerrotator/internal/config"
	"github.com/patrickwarner/bannerrotator/internal/inventory"
	"github.com/patrickwarner/bannerrotator/internal/loader"
	"github.com/patrickwarner/bannerrotator/internal/observability"
	"github.com/patrickwarner/bannerrotator/internal/ratelimit"

	"go.uber.org/zap"
)

// Server groups dependencies for HTTP handlers.
//
// The inventory is held behind an atomic pointer: each store instance is
// structurally frozen, and a reload builds a whole new store and swaps the
// pointer. In-flight requests keep serving from the snapshot they started
// with, so handlers never see a half-built inventory.
type Server struct {
	Logger  *zap.Logger
	Limiter *ratelimit.Limiter
	Metrics observability.MetricsRegistry
	Config  config.Config

	store    atomic.Pointer[inventory.Store]
	reloadMu sync.Mutex
}

// NewServer constructs a Server serving from the given frozen store.
func NewServer(logger *zap.Logger, store *inventory.Store, limiter *ratelimit.Limiter, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	s := &Server{
		Logger:  logger,
		Limiter: limiter,
		Metrics: metrics,
		Config:  cfg,
	}
	s.store.Store(store)
	return s
}

// Store returns the current inventory snapshot.
func (s *Server) Store() *inventory.Store {
	return s.store.Load()
}

// Reload rebuilds the inventory from the configured banners file and swaps
// it in atomically. Remaining impression counts do not carry over: every
// banner in the new store starts with its full declared budget.
func (s *Server) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	store, res, err := loader.LoadFile(s.Config.BannersFile, s.Logger)
	if err != nil {
		return fmt.Errorf("reload banners: %w", err)
	}
	s.store.Store(store)

	s.Metrics.SetBannersLoaded(res.Loaded)
	s.Metrics.SetBannersSkipped(res.Skipped)
	s.Logger.Info("banners reloaded",
		zap.Int("loaded", res.Loaded),
		zap.Int("skipped", res.Skipped))
	return nil
}
