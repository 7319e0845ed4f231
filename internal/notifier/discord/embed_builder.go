package discord

import (
	"time"
)

// DiscordEmbedBuilder helps in constructing DiscordEmbed objects.
type DiscordEmbedBuilder struct {
	embed     DiscordEmbed
	validator *DiscordEmbedValidator
}

// NewDiscordEmbedBuilder creates a new Discord embed builder
func NewDiscordEmbedBuilder() *DiscordEmbedBuilder {
	return &DiscordEmbedBuilder{
		embed:     DiscordEmbed{},
		validator: NewDiscordEmbedValidator(),
	}
}

// WithTitle sets the embed title
func (deb *DiscordEmbedBuilder) WithTitle(title string) *DiscordEmbedBuilder {
	deb.embed.Title = truncate(title, MaxTitleLength)
	return deb
}

// WithDescription sets the embed description
func (deb *DiscordEmbedBuilder) WithDescription(description string) *DiscordEmbedBuilder {
	deb.embed.Description = truncate(description, MaxDescriptionLength)
	return deb
}

// WithTimestamp sets the embed timestamp
func (deb *DiscordEmbedBuilder) WithTimestamp(timestamp time.Time) *DiscordEmbedBuilder {
	deb.embed.Timestamp = timestamp.Format(time.RFC3339)
	return deb
}

// WithColor sets the embed color
func (deb *DiscordEmbedBuilder) WithColor(color int) *DiscordEmbedBuilder {
	deb.embed.Color = color
	return deb
}

// WithFooter sets the embed footer
func (deb *DiscordEmbedBuilder) WithFooter(text, iconURL string) *DiscordEmbedBuilder {
	deb.embed.Footer = NewDiscordEmbedFooter(truncate(text, MaxFooterLength), iconURL)
	return deb
}

// AddField adds a field to the embed. Fields past the 25th are dropped.
func (deb *DiscordEmbedBuilder) AddField(name, value string, inline bool) *DiscordEmbedBuilder {
	if len(deb.embed.Fields) >= MaxFields {
		return deb
	}
	field := NewDiscordEmbedField(truncate(name, MaxFieldNameLength), truncate(value, MaxFieldValueLength), inline)
	deb.embed.Fields = append(deb.embed.Fields, field)
	return deb
}

// Build validates and returns the embed
func (deb *DiscordEmbedBuilder) Build() (DiscordEmbed, error) {
	if err := deb.validator.ValidateEmbed(deb.embed); err != nil {
		return DiscordEmbed{}, err
	}
	return deb.embed, nil
}

// truncate cuts s to at most max bytes, marking the cut with "…" and never splitting a rune
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	const ellipsis = "…"
	cut := max - len(ellipsis)
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
