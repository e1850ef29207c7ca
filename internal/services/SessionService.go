package services

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"intentd/internal/intent"
	"intentd/internal/models"
	"intentd/internal/providers"
	"intentd/internal/structures"
	"sort"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionServiceInterface interface {
	Open(ctx context.Context, sessionID string) (string, *intent.Tracker)
	Get(sessionID string) (*intent.Tracker, error)
	Close(ctx context.Context, sessionID string) error
	CloseAll(ctx context.Context)
	Sessions() []string
	Count() int
	SweepTrials() int
	EvictIdle(ctx context.Context, ttl time.Duration) int
}

type session struct {
	tracker  *intent.Tracker
	lastSeen atomic.Int64
}

type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	bridge     *intent.Bridge
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	keyPrefix  string
	thresholds intent.Thresholds
	now        func() time.Time
}

func NewSessionService(conf *structures.Config, store intent.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *SessionService {
	prefix := conf.Tracker.KeyPrefix
	if prefix == "" {
		prefix = "upgradeIntentTracking"
	}
	thresholds := intent.Thresholds{
		HoverDebounce: conf.Tracker.HoverDebounce,
		LongHover:     conf.Tracker.LongHoverThreshold,
		TrialDuration: conf.Tracker.DefaultTrialDuration,
	}
	ss := &SessionService{
		sessions:   make(map[string]*session),
		bridge:     intent.NewBridge(store, logger, conf.Tracker.Retention),
		logger:     logger,
		metrics:    metrics,
		keyPrefix:  prefix,
		thresholds: thresholds,
		now:        time.Now,
	}
	metrics.ObserveSessions(ss)
	return ss
}

func (ss *SessionService) storageKey(sessionID string) string {
	return ss.keyPrefix + ":" + sessionID
}

// Open returns the tracker for sessionID, creating and hydrating it when the
// session is not open yet. An empty sessionID gets a fresh uuid.
func (ss *SessionService) Open(ctx context.Context, sessionID string) (string, *intent.Tracker) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if s, ok := ss.sessions[sessionID]; ok {
		s.lastSeen.Store(ss.now().UnixMilli())
		return sessionID, s.tracker
	}

	tracker := intent.NewTracker(ctx, ss.storageKey(sessionID), ss.bridge,
		intent.WithClock(ss.now),
		intent.WithThresholds(ss.thresholds),
		intent.WithListener(&metricsListener{metrics: ss.metrics}),
	)
	s := &session{tracker: tracker}
	s.lastSeen.Store(ss.now().UnixMilli())
	ss.sessions[sessionID] = s

	ss.logger.Infof(providers.TypeApp, "Session %s opened with %d stored interactions", sessionID, tracker.Summary().TotalInteractions)
	return sessionID, tracker
}

func (ss *SessionService) Get(sessionID string) (*intent.Tracker, error) {
	ss.mu.RLock()
	s, ok := ss.sessions[sessionID]
	ss.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen.Store(ss.now().UnixMilli())
	return s.tracker, nil
}

func (ss *SessionService) Close(ctx context.Context, sessionID string) error {
	ss.mu.Lock()
	s, ok := ss.sessions[sessionID]
	delete(ss.sessions, sessionID)
	ss.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.tracker.Close(ctx)
	ss.logger.Infof(providers.TypeApp, "Session %s closed", sessionID)
	return nil
}

func (ss *SessionService) CloseAll(ctx context.Context) {
	ss.mu.Lock()
	sessions := ss.sessions
	ss.sessions = make(map[string]*session)
	ss.mu.Unlock()

	for _, s := range sessions {
		s.tracker.Close(ctx)
	}
	ss.logger.Infof(providers.TypeApp, "Closed %d sessions", len(sessions))
}

func (ss *SessionService) Sessions() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	ids := make([]string, 0, len(ss.sessions))
	for id := range ss.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ss *SessionService) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

func (ss *SessionService) snapshot() []*session {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	out := make([]*session, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		out = append(out, s)
	}
	return out
}

// SweepTrials drops elapsed trials in every open session.
func (ss *SessionService) SweepTrials() int {
	removed := 0
	for _, s := range ss.snapshot() {
		removed += s.tracker.SweepTrials()
	}
	return removed
}

// EvictIdle closes sessions that have not been touched for ttl.
// A non-positive ttl disables eviction.
func (ss *SessionService) EvictIdle(ctx context.Context, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := ss.now().Add(-ttl).UnixMilli()

	ss.mu.Lock()
	var idle []*session
	for id, s := range ss.sessions {
		if s.lastSeen.Load() < cutoff {
			idle = append(idle, s)
			delete(ss.sessions, id)
		}
	}
	ss.mu.Unlock()

	for _, s := range idle {
		s.tracker.Close(ctx)
	}
	if len(idle) > 0 {
		ss.logger.Infof(providers.TypeApp, "Evicted %d idle sessions", len(idle))
	}
	return len(idle)
}

type metricsListener struct {
	metrics providers.MetricsProviderInterface
}

func (l *metricsListener) InteractionRecorded(i models.Interaction) {
	l.metrics.IncInteractions(string(i.MetricID), string(i.InteractionType))
}

func (l *metricsListener) TrialStarted(t models.TrialUnlock) {
	l.metrics.IncTrialsStarted(string(t.MetricID))
}
