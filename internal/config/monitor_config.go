package config

import "time"

// MonitorConfig defines what is tracked and how often it is polled
type MonitorConfig struct {
	CompanyNumber           string `json:"company_number,omitempty" yaml:"company_number,omitempty" validate:"required,alphanum,max=10"`
	PollIntervalSeconds     int    `json:"poll_interval_seconds,omitempty" yaml:"poll_interval_seconds,omitempty" validate:"min=1"`
	NoChangeIntervalSeconds int    `json:"no_change_interval_seconds,omitempty" yaml:"no_change_interval_seconds,omitempty" validate:"min=1"`
	// ConcurrentFetches fetches all tracked fields in parallel within a cycle.
	ConcurrentFetches bool `json:"concurrent_fetches" yaml:"concurrent_fetches"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		CompanyNumber:           "",
		PollIntervalSeconds:     DefaultMonitorPollIntervalSeconds,
		NoChangeIntervalSeconds: DefaultMonitorNoChangeIntervalSeconds,
		ConcurrentFetches:       false,
	}
}

// PollInterval returns the sleep between cycles.
func (c MonitorConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// NoChangeInterval returns the minimum spacing between heartbeat notices.
func (c MonitorConfig) NoChangeInterval() time.Duration {
	return time.Duration(c.NoChangeIntervalSeconds) * time.Second
}
