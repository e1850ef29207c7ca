package models

// TrialUnlock is a temporary unlock of one metric. Times are milliseconds.
type TrialUnlock struct {
	MetricID  MetricID `json:"metricId"`
	StartTime int64    `json:"startTime"`
	Duration  int64    `json:"duration"`
}

func (t TrialUnlock) EndTime() int64 {
	return t.StartTime + t.Duration
}

func (t TrialUnlock) IsActive(now int64) bool {
	return now < t.EndTime()
}

func (t TrialUnlock) Remaining(now int64) int64 {
	return max(0, t.EndTime()-now)
}
