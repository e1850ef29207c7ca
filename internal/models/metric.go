package models

// MetricID identifies a locked (paywalled) analytics feature.
type MetricID string

const (
	MetricSentiment         MetricID = "sentiment"
	MetricRetention         MetricID = "retention"
	MetricVirality          MetricID = "virality"
	MetricVelocity          MetricID = "velocity"
	MetricCrossPlatform     MetricID = "crossPlatform"
	MetricLocationAnalytics MetricID = "locationAnalytics"
	MetricRetentionGraphs   MetricID = "retentionGraphs"
	MetricAIRecommendations MetricID = "aiRecommendations"
	MetricCaptionUsage      MetricID = "captionUsage"
	MetricCalendarInsights  MetricID = "calendarInsights"
	MetricBestPostingTimes  MetricID = "bestPostingTimes"
)

var LockedMetrics = []MetricID{
	MetricSentiment,
	MetricRetention,
	MetricVirality,
	MetricVelocity,
	MetricCrossPlatform,
	MetricLocationAnalytics,
	MetricRetentionGraphs,
	MetricAIRecommendations,
	MetricCaptionUsage,
	MetricCalendarInsights,
	MetricBestPostingTimes,
}

var lockedMetricSet = func() map[MetricID]struct{} {
	set := make(map[MetricID]struct{}, len(LockedMetrics))
	for _, m := range LockedMetrics {
		set[m] = struct{}{}
	}
	return set
}()

func (m MetricID) Valid() bool {
	_, ok := lockedMetricSet[m]
	return ok
}

type InteractionType string

const (
	InteractionHover     InteractionType = "hover"
	InteractionTap       InteractionType = "tap"
	InteractionClick     InteractionType = "click"
	InteractionLongHover InteractionType = "longHover"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionHover, InteractionTap, InteractionClick, InteractionLongHover:
		return true
	}
	return false
}

// HasDuration reports whether interactions of this type carry a duration.
func (t InteractionType) HasDuration() bool {
	return t == InteractionHover || t == InteractionLongHover
}

type Source string

const (
	SourceCard    Source = "card"
	SourceTooltip Source = "tooltip"
	SourceBanner  Source = "banner"
	SourceTeaser  Source = "teaser"
)

func (s Source) Valid() bool {
	switch s {
	case SourceCard, SourceTooltip, SourceBanner, SourceTeaser:
		return true
	}
	return false
}
