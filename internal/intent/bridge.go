package intent

import (
	"context"
	json "github.com/goccy/go-json"
	"intentd/internal/models"
	"intentd/internal/providers"
	"time"
)

// Store is the key/value service the bridge persists into.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Bridge loads and saves interaction logs. Failures are logged and never
// returned: a session without history behaves like a new one.
type Bridge struct {
	store     Store
	logger    providers.Logger
	retention time.Duration
	now       func() time.Time
}

func NewBridge(store Store, logger providers.Logger, retention time.Duration) *Bridge {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Bridge{
		store:     store,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

// SetClock replaces time.Now for the retention cutoff and lastUpdated stamps.
func (b *Bridge) SetClock(now func() time.Time) {
	if now != nil {
		b.now = now
	}
}

// Load returns the interactions stored under key that are newer than the
// retention window.
func (b *Bridge) Load(ctx context.Context, key string) []models.Interaction {
	raw, ok, err := b.store.Get(ctx, key)
	if err != nil {
		b.logger.Errorf(providers.TypeApp, "Failed to read tracking state %s: %s", key, err)
		return nil
	}
	if !ok {
		return nil
	}

	var state models.PersistedState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		b.logger.Warnf(providers.TypeApp, "Discarding malformed tracking state %s: %s", key, err)
		return nil
	}

	cutoff := b.now().Add(-b.retention).UnixMilli()
	kept := make([]models.Interaction, 0, len(state.Interactions))
	for _, i := range state.Interactions {
		if i.Timestamp > cutoff {
			kept = append(kept, i)
		}
	}
	if dropped := len(state.Interactions) - len(kept); dropped > 0 {
		b.logger.Debugf(providers.TypeApp, "Dropped %d expired interactions from %s", dropped, key)
	}
	return kept
}

// Save overwrites key with the full log. It reports whether the write landed.
func (b *Bridge) Save(ctx context.Context, key string, interactions []models.Interaction) bool {
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	data, err := json.Marshal(models.PersistedState{
		Interactions: interactions,
		LastUpdated:  b.now().UnixMilli(),
	})
	if err != nil {
		b.logger.Errorf(providers.TypeApp, "Failed to encode tracking state %s: %s", key, err)
		return false
	}

	if err := b.store.Set(ctx, key, string(data)); err != nil {
		b.logger.Errorf(providers.TypeApp, "Failed to write tracking state %s: %s", key, err)
		return false
	}
	return true
}
