package intent

import "intentd/internal/models"

// HighIntentThreshold is the interaction count after which every request
// gets the high-intent offer.
const HighIntentThreshold = 5

var HighIntentPrompt = models.PromptConfig{
	Title:          "You're Ready for Pro!",
	Description:    "You've been exploring premium analytics. Unlock every insight and grow faster with Pro.",
	CTA:            "Claim Your Discount",
	Urgency:        models.UrgencyHigh,
	Discount:       "20% off",
	ExpiresInHours: 24,
}

var defaultPrompts = map[models.MetricID]models.PromptConfig{
	models.MetricSentiment: {
		Title:       "Understand How Your Audience Feels",
		Description: "Sentiment analysis reads every comment so you know what resonates.",
		CTA:         "Unlock Sentiment",
		Urgency:     models.UrgencyMedium,
	},
	models.MetricRetention: {
		Title:       "See Who Keeps Watching",
		Description: "Retention analytics show exactly where viewers drop off.",
		CTA:         "Unlock Retention",
		Urgency:     models.UrgencyMedium,
	},
	models.MetricVirality: {
		Title:       "Track Your Virality Score",
		Description: "Find out which posts are spreading and why.",
		CTA:         "Unlock Virality",
		Urgency:     models.UrgencyMedium,
	},
	models.MetricVelocity: {
		Title:       "Measure Engagement Velocity",
		Description: "Spot posts gaining momentum in their first hours.",
		CTA:         "Unlock Velocity",
		Urgency:     models.UrgencyLow,
	},
	models.MetricCrossPlatform: {
		Title:       "Compare Every Platform",
		Description: "See TikTok, Instagram and YouTube performance side by side.",
		CTA:         "Upgrade to Pro",
		Urgency:     models.UrgencyMedium,
	},
	models.MetricLocationAnalytics: {
		Title:       "Discover Where Your Audience Lives",
		Description: "Location analytics map your viewers by country and city.",
		CTA:         "Unlock Locations",
		Urgency:     models.UrgencyLow,
	},
	models.MetricRetentionGraphs: {
		Title:       "Unlock Retention Graphs",
		Description: "Second-by-second retention curves for every video.",
		CTA:         "Upgrade to Pro",
		Urgency:     models.UrgencyMedium,
	},
	models.MetricAIRecommendations: {
		Title:       "Get AI-Powered Recommendations",
		Description: "Personalized tips on what to post next, based on your results.",
		CTA:         "Upgrade Now",
		Urgency:     models.UrgencyMedium,
	},
	models.MetricCaptionUsage: {
		Title:       "Never Run Out of Captions",
		Description: "Upgrade for more AI captions and hashtags every month.",
		CTA:         "Get More Captions",
		Urgency:     models.UrgencyHigh,
	},
	models.MetricCalendarInsights: {
		Title:       "Plan With Calendar Insights",
		Description: "See which days and weeks drive your best results.",
		CTA:         "Unlock Insights",
		Urgency:     models.UrgencyLow,
	},
	models.MetricBestPostingTimes: {
		Title:       "Post at the Perfect Time",
		Description: "Know exactly when your audience is online.",
		CTA:         "Unlock Best Times",
		Urgency:     models.UrgencyMedium,
	},
}

// DefaultPrompt returns the static prompt for metric.
func DefaultPrompt(metric models.MetricID) (models.PromptConfig, bool) {
	p, ok := defaultPrompts[metric]
	return p, ok
}

func fallbackPrompt() models.PromptConfig {
	return defaultPrompts[models.MetricAIRecommendations]
}

func selectPrompt(t *tally, metric models.MetricID) models.PromptConfig {
	if t.total >= HighIntentThreshold {
		return HighIntentPrompt
	}
	if metric != "" {
		if p, ok := DefaultPrompt(metric); ok {
			return p
		}
	}
	if t.total > 0 {
		if p, ok := DefaultPrompt(t.mostInteracted()[0].MetricID); ok {
			return p
		}
	}
	return fallbackPrompt()
}
