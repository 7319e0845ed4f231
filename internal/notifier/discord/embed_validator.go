package discord

import (
	"fmt"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
)

// DiscordEmbedValidator validates Discord embed objects
type DiscordEmbedValidator struct{}

// NewDiscordEmbedValidator creates a new embed validator
func NewDiscordEmbedValidator() *DiscordEmbedValidator {
	return &DiscordEmbedValidator{}
}

// ValidateEmbed checks embed against Discord's size limits
func (dev *DiscordEmbedValidator) ValidateEmbed(embed DiscordEmbed) error {
	if len(embed.Title) > MaxTitleLength {
		return errorwrapper.NewValidationError("title", embed.Title, "title cannot exceed 256 characters")
	}
	if len(embed.Description) > MaxDescriptionLength {
		return errorwrapper.NewValidationError("description", embed.Description, "description cannot exceed 4096 characters")
	}
	if len(embed.Fields) > MaxFields {
		return errorwrapper.NewValidationError("fields", len(embed.Fields), "cannot have more than 25 fields")
	}

	for i, field := range embed.Fields {
		if field.Name == "" {
			return errorwrapper.NewValidationError("field_name", field.Name, fmt.Sprintf("field %d name cannot be empty", i))
		}
		if field.Value == "" {
			return errorwrapper.NewValidationError("field_value", field.Value, fmt.Sprintf("field %d value cannot be empty", i))
		}
		if len(field.Name) > MaxFieldNameLength {
			return errorwrapper.NewValidationError("field_name", field.Name, fmt.Sprintf("field %d name cannot exceed 256 characters", i))
		}
		if len(field.Value) > MaxFieldValueLength {
			return errorwrapper.NewValidationError("field_value", field.Value, fmt.Sprintf("field %d value cannot exceed 1024 characters", i))
		}
	}

	if embed.Footer != nil && len(embed.Footer.Text) > MaxFooterLength {
		return errorwrapper.NewValidationError("footer_text", embed.Footer.Text, "footer text cannot exceed 2048 characters")
	}
	return nil
}
