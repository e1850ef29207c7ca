package scheduler

import (
	"context"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
	"intentd/internal/providers"
	"intentd/internal/scheduler/interfaces"
	"intentd/internal/services"
	"intentd/internal/structures"
	"sync"
	"time"
)

const defaultEvictInterval = time.Minute

// Scheduler owns the periodic jobs: one trial sweep shared by every session
// and metric, and the idle session eviction.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	sessions services.SessionServiceInterface
	closer   Closer
	cron     *gron.Cron
	running  atomic.Bool
	opsMu    sync.Mutex
}

// Closer releases the storage backend once sessions are flushed.
type Closer interface {
	Close() error
}

func (s *Scheduler) Init() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Tracker.SweepInterval), func() {
		s.Sweep()
	})

	if s.config.Session.IdleTTL > 0 {
		interval := s.config.Session.EvictInterval
		if interval <= 0 {
			interval = defaultEvictInterval
		}
		s.cron.AddFunc(gron.Every(interval), func() {
			s.Evict(context.Background())
		})
	}

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started: sweep every %s", s.config.Tracker.SweepInterval)
}

func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep drops elapsed trials from every open session.
func (s *Scheduler) Sweep() int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	removed := s.sessions.SweepTrials()
	if removed > 0 {
		s.logger.Debugf(providers.TypeApp, "Swept %d expired trials", removed)
	}
	return removed
}

func (s *Scheduler) Evict(ctx context.Context) int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	return s.sessions.EvictIdle(ctx, s.config.Session.IdleTTL)
}

// Persist closes every open session, flushing unsaved state, then closes storage.
func (s *Scheduler) Persist(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting %d open sessions...", s.sessions.Count())
	s.sessions.CloseAll(ctx)

	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while closing storage: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, sessions services.SessionServiceInterface, closer Closer) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		sessions: sessions,
		closer:   closer,
	}
}
