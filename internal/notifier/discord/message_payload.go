package discord

// DiscordMessagePayload represents the JSON payload sent to a Discord webhook.
type DiscordMessagePayload struct {
	Content         string                 `json:"content,omitempty"`
	Username        string                 `json:"username,omitempty"`
	AvatarURL       string                 `json:"avatar_url,omitempty"`
	Embeds          []DiscordEmbed         `json:"embeds,omitempty"`
	AllowedMentions *DiscordAllowedMention `json:"allowed_mentions,omitempty"`
}

// DiscordAllowedMention restricts which mentions in Content actually ping.
type DiscordAllowedMention struct {
	Roles []string `json:"roles"`
}
