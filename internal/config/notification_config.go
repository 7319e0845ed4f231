package config

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	DiscordWebhookURL  string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	MentionRoleIDs     []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	NotifyOnHeartbeat  bool     `json:"notify_on_heartbeat" yaml:"notify_on_heartbeat"`
	DisableConsole     bool     `json:"disable_console" yaml:"disable_console"`
	WebhookTimeoutSecs int      `json:"webhook_timeout_secs,omitempty" yaml:"webhook_timeout_secs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL:  "",
		MentionRoleIDs:     []string{},
		NotifyOnHeartbeat:  false,
		DisableConsole:     false,
		WebhookTimeoutSecs: 20,
	}
}
