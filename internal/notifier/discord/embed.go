package discord

// DiscordEmbed represents a Discord embed object.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`       // Title of embed
	Description string              `json:"description,omitempty"` // Description of embed
	URL         string              `json:"url,omitempty"`         // URL of embed
	Timestamp   string              `json:"timestamp,omitempty"`   // ISO8601 timestamp
	Color       int                 `json:"color,omitempty"`       // Color code of the embed
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"` // Array of embed field objects
}

// DiscordEmbedFooter represents the footer of an embed.
type DiscordEmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// NewDiscordEmbedFooter creates a new Discord embed footer
func NewDiscordEmbedFooter(text, iconURL string) *DiscordEmbedFooter {
	return &DiscordEmbedFooter{
		Text:    text,
		IconURL: iconURL,
	}
}

// DiscordEmbedField represents a field in an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// NewDiscordEmbedField creates a new Discord embed field
func NewDiscordEmbedField(name, value string, inline bool) DiscordEmbedField {
	return DiscordEmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}
