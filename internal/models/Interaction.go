package models

// Interaction is one observed user action on a locked metric.
// Timestamp and Duration are milliseconds.
type Interaction struct {
	MetricID        MetricID        `json:"metricId"`
	InteractionType InteractionType `json:"interactionType"`
	Timestamp       int64           `json:"timestamp"`
	Duration        *int64          `json:"duration,omitempty"`
	Source          Source          `json:"source,omitempty"`
}

// InteractionInput is an Interaction before the tracker stamps it.
type InteractionInput struct {
	MetricID        MetricID        `json:"metricId"`
	InteractionType InteractionType `json:"interactionType"`
	Duration        *int64          `json:"duration,omitempty"`
	Source          Source          `json:"source,omitempty"`
}

type MetricCount struct {
	MetricID MetricID `json:"metricId"`
	Count    int      `json:"count"`
}

type InteractionSummary struct {
	TopMetrics         []MetricCount `json:"topMetrics"`
	TotalInteractions  int           `json:"totalInteractions"`
	TotalHoverTime     int64         `json:"totalHoverTime"`
	UpgradeIntentScore float64       `json:"upgradeIntentScore"`
}

// PersistedState is the document stored under a session's storage key.
type PersistedState struct {
	Interactions []Interaction `json:"interactions"`
	LastUpdated  int64         `json:"lastUpdated"`
}
