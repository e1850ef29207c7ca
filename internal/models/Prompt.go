package models

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// PromptConfig is the upsell message rendered for a user.
// Discount and ExpiresInHours are only set on time-limited offers.
type PromptConfig struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	CTA            string  `json:"cta"`
	Urgency        Urgency `json:"urgency"`
	Discount       string  `json:"discount,omitempty"`
	ExpiresInHours int     `json:"expiresIn,omitempty"`
}

type ModalState struct {
	Open     bool      `json:"open"`
	MetricID *MetricID `json:"metricId"`
}
