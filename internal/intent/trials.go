package intent

import (
	"context"
	"intentd/internal/models"
	"time"
)

// StartDefaultTrial unlocks metric for the configured trial length.
func (t *Tracker) StartDefaultTrial(ctx context.Context, metric models.MetricID) (models.TrialUnlock, bool) {
	return t.StartTrial(ctx, metric, t.thresholds.TrialDuration)
}

// StartTrial unlocks metric for exactly duration. A zero or negative
// duration yields a trial that is already elapsed. An existing trial for
// metric is replaced. Starting a trial also counts as a teaser click.
func (t *Tracker) StartTrial(ctx context.Context, metric models.MetricID, duration time.Duration) (models.TrialUnlock, bool) {
	if !metric.Valid() {
		return models.TrialUnlock{}, false
	}
	duration = max(duration, 0)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return models.TrialUnlock{}, false
	}

	trial := models.TrialUnlock{
		MetricID:  metric,
		StartTime: t.nowMillis(),
		Duration:  duration.Milliseconds(),
	}
	t.removeTrial(metric)
	t.trials = append(t.trials, trial)
	if t.listener != nil {
		t.listener.TrialStarted(trial)
	}

	t.record(ctx, models.InteractionInput{
		MetricID:        metric,
		InteractionType: models.InteractionClick,
		Source:          models.SourceTeaser,
	})
	return trial, true
}

func (t *Tracker) removeTrial(metric models.MetricID) {
	kept := t.trials[:0]
	for _, tr := range t.trials {
		if tr.MetricID != metric {
			kept = append(kept, tr)
		}
	}
	t.trials = kept
}

func (t *Tracker) activeTrial(metric models.MetricID, now int64) (models.TrialUnlock, bool) {
	for _, tr := range t.trials {
		if tr.MetricID == metric && tr.IsActive(now) {
			return tr, true
		}
	}
	return models.TrialUnlock{}, false
}

// IsTrialActive checks the trial against the clock on every call, so an
// elapsed trial reads as inactive even before the next sweep.
func (t *Tracker) IsTrialActive(metric models.MetricID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.activeTrial(metric, t.nowMillis())
	return ok
}

// TrialTimeRemaining returns the milliseconds left on metric's trial, or
// false when there is no active trial.
func (t *Tracker) TrialTimeRemaining(metric models.MetricID) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.nowMillis()
	tr, ok := t.activeTrial(metric, now)
	if !ok {
		return 0, false
	}
	return tr.Remaining(now), true
}

func (t *Tracker) ActiveTrials() []models.TrialUnlock {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.nowMillis()
	out := make([]models.TrialUnlock, 0, len(t.trials))
	for _, tr := range t.trials {
		if tr.IsActive(now) {
			out = append(out, tr)
		}
	}
	return out
}

// SweepTrials drops elapsed trials and returns how many were removed.
func (t *Tracker) SweepTrials() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.nowMillis()
	before := len(t.trials)
	kept := t.trials[:0]
	for _, tr := range t.trials {
		if tr.IsActive(now) {
			kept = append(kept, tr)
		}
	}
	t.trials = kept
	return before - len(kept)
}

// TrialCount is the number of trials held, including elapsed ones not yet swept.
func (t *Tracker) TrialCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.trials)
}
