// Package intent tracks how a user interacts with locked analytics features
// and turns that into upsell prompts and short feature trials.
package intent

import (
	"context"
	"intentd/internal/models"
	"slices"
	"sync"
	"time"
)

type hoverStart struct {
	at     int64
	source models.Source
}

// Tracker holds the upgrade intent state of one session.
// Construct it with NewTracker and release it with Close.
type Tracker struct {
	mu sync.Mutex

	key        string
	bridge     *Bridge
	listener   Listener
	now        func() time.Time
	thresholds Thresholds

	sessionStart int64
	interactions []models.Interaction
	tally        *tally
	hovers       map[models.MetricID]hoverStart
	trials       []models.TrialUnlock
	modal        models.ModalState
	dirty        bool
	closed       bool
}

// NewTracker creates a tracker persisted under key and hydrates it from the
// bridge. A nil bridge keeps the tracker in memory only.
func NewTracker(ctx context.Context, key string, bridge *Bridge, opts ...Option) *Tracker {
	t := &Tracker{
		key:        key,
		bridge:     bridge,
		now:        time.Now,
		thresholds: DefaultThresholds(),
		hovers:     make(map[models.MetricID]hoverStart),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.sessionStart = t.nowMillis()
	if bridge != nil {
		t.interactions = bridge.Load(ctx, key)
	}
	t.tally = tallyOf(t.interactions)
	return t
}

func (t *Tracker) nowMillis() int64 {
	return t.now().UnixMilli()
}

func (t *Tracker) Key() string {
	return t.key
}

func (t *Tracker) SessionStart() int64 {
	return t.sessionStart
}

// RecordInteraction stamps and appends an interaction, then persists the log.
// Interactions on unknown metrics are ignored.
func (t *Tracker) RecordInteraction(ctx context.Context, in models.InteractionInput) (models.Interaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record(ctx, in)
}

func (t *Tracker) record(ctx context.Context, in models.InteractionInput) (models.Interaction, bool) {
	if t.closed || !in.MetricID.Valid() || !in.InteractionType.Valid() {
		return models.Interaction{}, false
	}

	i := models.Interaction{
		MetricID:        in.MetricID,
		InteractionType: in.InteractionType,
		Timestamp:       t.nowMillis(),
		Source:          in.Source,
	}
	if in.Duration != nil && in.InteractionType.HasDuration() {
		d := *in.Duration
		i.Duration = &d
	}

	t.interactions = append(t.interactions, i)
	t.tally.add(i)
	if t.listener != nil {
		t.listener.InteractionRecorded(i)
	}
	t.persist(ctx)
	return i, true
}

func (t *Tracker) persist(ctx context.Context) {
	if t.bridge == nil {
		return
	}
	t.dirty = !t.bridge.Save(ctx, t.key, t.interactions)
}

// BeginHover remembers when the pointer entered metric. Nothing is logged yet.
func (t *Tracker) BeginHover(metric models.MetricID, source models.Source) {
	if !metric.Valid() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.hovers[metric] = hoverStart{at: t.nowMillis(), source: source}
}

// EndHover closes a hover started with BeginHover. Hovers not longer than the
// debounce are dropped; longer ones are logged as hover or longHover.
func (t *Tracker) EndHover(ctx context.Context, metric models.MetricID) (models.Interaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.hovers[metric]
	if !ok {
		return models.Interaction{}, false
	}
	delete(t.hovers, metric)

	duration := t.nowMillis() - start.at
	if duration <= t.thresholds.HoverDebounce.Milliseconds() {
		return models.Interaction{}, false
	}

	kind := models.InteractionHover
	if duration > t.thresholds.LongHover.Milliseconds() {
		kind = models.InteractionLongHover
	}
	return t.record(ctx, models.InteractionInput{
		MetricID:        metric,
		InteractionType: kind,
		Duration:        &duration,
		Source:          start.source,
	})
}

// PendingHovers reports how many hovers have started but not ended.
func (t *Tracker) PendingHovers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.hovers)
}

func (t *Tracker) Interactions() []models.Interaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.interactions)
}

func (t *Tracker) CountsByMetric() map[models.MetricID]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tally.countsByMetric()
}

func (t *Tracker) MostInteractedMetrics() []models.MetricCount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tally.mostInteracted()
}

func (t *Tracker) Summary() models.InteractionSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tally.summary()
}

// PersonalizedPrompt picks the upsell prompt to show. metric may be empty.
func (t *Tracker) PersonalizedPrompt(metric models.MetricID) models.PromptConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return selectPrompt(t.tally, metric)
}

// OpenUpgradeModal opens the upsell modal. A known metric is logged as a card
// click and becomes the modal subject.
func (t *Tracker) OpenUpgradeModal(ctx context.Context, metric models.MetricID) models.ModalState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.modal = models.ModalState{Open: true}
	if metric.Valid() {
		t.record(ctx, models.InteractionInput{
			MetricID:        metric,
			InteractionType: models.InteractionClick,
			Source:          models.SourceCard,
		})
		m := metric
		t.modal.MetricID = &m
	}
	return t.modalState()
}

func (t *Tracker) CloseUpgradeModal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modal = models.ModalState{}
}

func (t *Tracker) Modal() models.ModalState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modalState()
}

func (t *Tracker) modalState() models.ModalState {
	state := models.ModalState{Open: t.modal.Open}
	if t.modal.MetricID != nil {
		m := *t.modal.MetricID
		state.MetricID = &m
	}
	return state
}

// Flush rewrites the log if the last save failed.
func (t *Tracker) Flush(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		t.persist(ctx)
	}
}

// Close flushes pending state and stops the tracker from accepting events.
// Pending hovers are discarded.
func (t *Tracker) Close(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.dirty {
		t.persist(ctx)
	}
	t.closed = true
	t.hovers = make(map[models.MetricID]hoverStart)
	t.trials = nil
	t.modal = models.ModalState{}
}
