package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricID_Valid(t *testing.T) {
	for _, m := range LockedMetrics {
		assert.True(t, m.Valid(), m)
	}
	assert.Len(t, LockedMetrics, 11)
	assert.False(t, MetricID("followers").Valid())
	assert.False(t, MetricID("").Valid())
}

func TestInteractionType(t *testing.T) {
	assert.True(t, InteractionHover.Valid())
	assert.True(t, InteractionLongHover.Valid())
	assert.False(t, InteractionType("doubleClick").Valid())

	assert.True(t, InteractionHover.HasDuration())
	assert.True(t, InteractionLongHover.HasDuration())
	assert.False(t, InteractionClick.HasDuration())
	assert.False(t, InteractionTap.HasDuration())
}

func TestSource_Valid(t *testing.T) {
	assert.True(t, SourceTeaser.Valid())
	assert.False(t, Source("email").Valid())
}

func TestTrialUnlock(t *testing.T) {
	trial := TrialUnlock{MetricID: MetricVirality, StartTime: 1000, Duration: 500}

	assert.Equal(t, int64(1500), trial.EndTime())
	assert.True(t, trial.IsActive(1499))
	assert.False(t, trial.IsActive(1500))
	assert.Equal(t, int64(200), trial.Remaining(1300))
	assert.Equal(t, int64(0), trial.Remaining(2000))
}
