package intent

import (
	"intentd/internal/models"
	"time"
)

const (
	DefaultHoverDebounce      = 500 * time.Millisecond
	DefaultLongHoverThreshold = 2 * time.Second
	DefaultTrialDuration      = 5 * time.Minute
	DefaultRetention          = 7 * 24 * time.Hour
)

// Thresholds are the timing rules the tracker applies.
// A hover is kept only if it lasts longer than HoverDebounce and becomes a
// longHover when it lasts longer than LongHover.
type Thresholds struct {
	HoverDebounce time.Duration
	LongHover     time.Duration
	TrialDuration time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HoverDebounce: DefaultHoverDebounce,
		LongHover:     DefaultLongHoverThreshold,
		TrialDuration: DefaultTrialDuration,
	}
}

// Listener observes tracker events. Calls happen with the tracker locked,
// so implementations must not call back into it.
type Listener interface {
	InteractionRecorded(i models.Interaction)
	TrialStarted(t models.TrialUnlock)
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithThresholds overrides non-zero thresholds.
func WithThresholds(th Thresholds) Option {
	return func(t *Tracker) {
		if th.HoverDebounce > 0 {
			t.thresholds.HoverDebounce = th.HoverDebounce
		}
		if th.LongHover > 0 {
			t.thresholds.LongHover = th.LongHover
		}
		if th.TrialDuration > 0 {
			t.thresholds.TrialDuration = th.TrialDuration
		}
	}
}

func WithListener(l Listener) Option {
	return func(t *Tracker) {
		t.listener = l
	}
}
