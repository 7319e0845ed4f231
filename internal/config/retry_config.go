package config

import "time"

// RetryConfig defines configuration for HTTP request retries within a single fetch
type RetryConfig struct {
	// Maximum number of retry attempts for retryable status codes
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"omitempty,min=0,max=10"`
	// Base delay in milliseconds for exponential backoff
	BaseDelayMs int `json:"base_delay_ms,omitempty" yaml:"base_delay_ms,omitempty" validate:"omitempty,min=1,max=300000"`
	// Maximum delay in milliseconds for exponential backoff
	MaxDelayMs int `json:"max_delay_ms,omitempty" yaml:"max_delay_ms,omitempty" validate:"omitempty,min=1,max=3600000"`
	// Enable jitter to randomize delays slightly
	EnableJitter bool `json:"enable_jitter" yaml:"enable_jitter"`
	// HTTP status codes that should trigger retries
	RetryStatusCodes []int `json:"retry_status_codes,omitempty" yaml:"retry_status_codes,omitempty" validate:"omitempty,dive,min=100,max=599"`
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:       DefaultRetryMaxRetries,
		BaseDelayMs:      DefaultRetryBaseDelayMs,
		MaxDelayMs:       DefaultRetryMaxDelayMs,
		EnableJitter:     true,
		RetryStatusCodes: []int{429, 502, 503},
	}
}

// BaseDelay returns BaseDelayMs as a duration.
func (c RetryConfig) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond
}

// MaxDelay returns MaxDelayMs as a duration.
func (c RetryConfig) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}
