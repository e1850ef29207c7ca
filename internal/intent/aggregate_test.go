package intent

import (
	"context"
	"intentd/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(v int64) *int64 { return &v }

func TestSummary_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.UpgradeIntentScore)
	assert.Empty(t, s.TopMetrics)
	assert.Zero(t, s.TotalInteractions)
	assert.Zero(t, s.TotalHoverTime)
}

func TestSummary_ScoreFormula(t *testing.T) {
	tests := []struct {
		name         string
		interactions []models.Interaction
		want         float64
	}{
		{
			name:         "single tap",
			interactions: []models.Interaction{{MetricID: models.MetricVirality, InteractionType: models.InteractionTap}},
			want:         5,
		},
		{
			name:         "single click",
			interactions: []models.Interaction{{MetricID: models.MetricVirality, InteractionType: models.InteractionClick}},
			want:         15,
		},
		{
			name: "hover time",
			interactions: []models.Interaction{
				{MetricID: models.MetricVirality, InteractionType: models.InteractionHover, Duration: ms(1000)},
			},
			want: 5.1,
		},
		{
			name: "long hover",
			interactions: []models.Interaction{
				{MetricID: models.MetricVirality, InteractionType: models.InteractionLongHover, Duration: ms(5000)},
			},
			want: 10.5,
		},
		{
			name: "volume and hover caps",
			interactions: []models.Interaction{
				{MetricID: models.MetricVirality, InteractionType: models.InteractionHover, Duration: ms(400000)},
				{MetricID: models.MetricVirality, InteractionType: models.InteractionTap},
				{MetricID: models.MetricVirality, InteractionType: models.InteractionTap},
				{MetricID: models.MetricVirality, InteractionType: models.InteractionTap},
				{MetricID: models.MetricVirality, InteractionType: models.InteractionTap},
				{MetricID: models.MetricVirality, InteractionType: models.InteractionTap},
				{MetricID: models.MetricVirality, InteractionType: models.InteractionTap},
			},
			want: 60,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Summarize(tt.interactions).UpgradeIntentScore, 1e-9)
		})
	}
}

func TestSummary_ScoreCapped(t *testing.T) {
	var interactions []models.Interaction
	for range 20 {
		interactions = append(interactions, models.Interaction{MetricID: models.MetricRetention, InteractionType: models.InteractionClick})
	}

	assert.Equal(t, 100.0, Summarize(interactions).UpgradeIntentScore)
}

func TestSummary_ScoreMonotonic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	steps := []func(){
		func() { f.tracker.RecordInteraction(ctx, click(models.MetricRetention)) },
		func() { hoverFor(f, models.MetricVirality, time.Second) },
		func() { hoverFor(f, models.MetricVirality, 3*time.Second) },
		func() { f.tracker.StartTrial(ctx, models.MetricSentiment, time.Minute) },
		func() { f.tracker.OpenUpgradeModal(ctx, models.MetricVelocity) },
	}

	prev := f.tracker.Summary().UpgradeIntentScore
	for range 6 {
		for _, step := range steps {
			step()
			score := f.tracker.Summary().UpgradeIntentScore
			assert.GreaterOrEqual(t, score, prev)
			assert.LessOrEqual(t, score, 100.0)
			prev = score
		}
	}
	assert.Equal(t, 100.0, prev)
}

func TestSummary_TotalHoverTime(t *testing.T) {
	f := newFixture(t)
	hoverFor(f, models.MetricVirality, 800*time.Millisecond)
	hoverFor(f, models.MetricVirality, 2500*time.Millisecond)
	f.tracker.RecordInteraction(context.Background(), click(models.MetricVirality))

	assert.Equal(t, int64(3300), f.tracker.Summary().TotalHoverTime)
}

func TestMostInteracted_SortedWithStableTies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, m := range []models.MetricID{
		models.MetricVelocity,
		models.MetricRetention,
		models.MetricSentiment,
		models.MetricRetention,
		models.MetricSentiment,
		models.MetricCaptionUsage,
	} {
		f.tracker.RecordInteraction(ctx, click(m))
	}

	got := f.tracker.MostInteractedMetrics()

	assert.Equal(t, []models.MetricCount{
		{MetricID: models.MetricRetention, Count: 2},
		{MetricID: models.MetricSentiment, Count: 2},
		{MetricID: models.MetricVelocity, Count: 1},
		{MetricID: models.MetricCaptionUsage, Count: 1},
	}, got)

	top := f.tracker.Summary().TopMetrics
	require.Len(t, top, 3)
	assert.Equal(t, got[:3], top)
}

func TestCountsByMetric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.tracker.RecordInteraction(ctx, click(models.MetricRetention))
	f.tracker.RecordInteraction(ctx, click(models.MetricRetention))
	f.tracker.RecordInteraction(ctx, click(models.MetricVirality))

	counts := f.tracker.CountsByMetric()

	assert.Equal(t, map[models.MetricID]int{models.MetricRetention: 2, models.MetricVirality: 1}, counts)

	counts[models.MetricRetention] = 99
	assert.Equal(t, 2, f.tracker.CountsByMetric()[models.MetricRetention])
}
