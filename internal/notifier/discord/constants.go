package discord

// Webhook identity and colors
const (
	Username          = "companywatch"
	AddedEmbedColor   = 0x5CB85C // green
	RemovedEmbedColor = 0xD9534F // red
	MixedEmbedColor   = 0xF0AD4E // orange
	QuietEmbedColor   = 0x5BC0DE // blue
)

// Discord embed limits
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4096
	MaxFields            = 25
	MaxFieldNameLength   = 256
	MaxFieldValueLength  = 1024
	MaxFooterLength      = 2048
)
