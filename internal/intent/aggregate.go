package intent

import (
	"intentd/internal/models"
	"slices"
)

const (
	topMetricsLimit = 3
	maxIntentScore  = 100.0
)

// tally is the aggregate view of an interaction log. It is updated on every
// append so reads never rescan the log.
type tally struct {
	counts         map[models.MetricID]int
	firstSeen      []models.MetricID
	total          int
	totalHoverTime int64
	clicks         int
	longHovers     int
}

func newTally() *tally {
	return &tally{counts: make(map[models.MetricID]int)}
}

func tallyOf(interactions []models.Interaction) *tally {
	t := newTally()
	for _, i := range interactions {
		t.add(i)
	}
	return t
}

func (t *tally) add(i models.Interaction) {
	if _, ok := t.counts[i.MetricID]; !ok {
		t.firstSeen = append(t.firstSeen, i.MetricID)
	}
	t.counts[i.MetricID]++
	t.total++
	if i.Duration != nil {
		t.totalHoverTime += *i.Duration
	}
	switch i.InteractionType {
	case models.InteractionClick:
		t.clicks++
	case models.InteractionLongHover:
		t.longHovers++
	}
}

func (t *tally) countsByMetric() map[models.MetricID]int {
	out := make(map[models.MetricID]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// mostInteracted orders metrics by count, descending. Ties keep first-seen order.
func (t *tally) mostInteracted() []models.MetricCount {
	out := make([]models.MetricCount, 0, len(t.firstSeen))
	for _, m := range t.firstSeen {
		out = append(out, models.MetricCount{MetricID: m, Count: t.counts[m]})
	}
	slices.SortStableFunc(out, func(a, b models.MetricCount) int {
		return b.Count - a.Count
	})
	return out
}

func (t *tally) score() float64 {
	score := min(float64(t.total*5), 30) +
		min(float64(t.totalHoverTime)/10000, 30) +
		float64(10*t.clicks) +
		float64(5*t.longHovers)
	return min(score, maxIntentScore)
}

func (t *tally) summary() models.InteractionSummary {
	top := t.mostInteracted()
	if len(top) > topMetricsLimit {
		top = top[:topMetricsLimit]
	}
	return models.InteractionSummary{
		TopMetrics:         top,
		TotalInteractions:  t.total,
		TotalHoverTime:     t.totalHoverTime,
		UpgradeIntentScore: t.score(),
	}
}

// Summarize derives the summary of an arbitrary interaction log.
func Summarize(interactions []models.Interaction) models.InteractionSummary {
	return tallyOf(interactions).summary()
}
