package config

import "time"

// RegistryConfig defines how the Companies House API is reached
type RegistryConfig struct {
	BaseURL        string      `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"required,url"`
	APIKey         string      `json:"api_key,omitempty" yaml:"api_key,omitempty" validate:"required"`
	TimeoutSeconds int         `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"min=1"`
	ItemsPerPage   int         `json:"items_per_page,omitempty" yaml:"items_per_page,omitempty" validate:"omitempty,min=1,max=100"`
	UserAgent      string      `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	EnableHTTP2    bool        `json:"enable_http2" yaml:"enable_http2"`
	Retry          RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// NewDefaultRegistryConfig creates default registry configuration
func NewDefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		BaseURL:        DefaultRegistryBaseURL,
		APIKey:         "",
		TimeoutSeconds: DefaultRegistryTimeoutSeconds,
		ItemsPerPage:   0,
		UserAgent:      DefaultRegistryUserAgent,
		EnableHTTP2:    true,
		Retry:          NewDefaultRetryConfig(),
	}
}

// Timeout returns TimeoutSeconds as a duration.
func (c RegistryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
