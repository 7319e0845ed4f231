package discord

import (
	"context"
	"strings"
	"time"

	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/httpclient"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
)

// DiscordNotifier posts change blocks and heartbeats to a Discord webhook.
// It satisfies models.Presenter.
type DiscordNotifier struct {
	logger            zerolog.Logger
	httpClient        *httpclient.HTTPClient
	webhookURL        string
	mentionRoleIDs    []string
	notifyOnHeartbeat bool
	now               func() time.Time
}

// NewDiscordNotifier creates a notifier for cfg.DiscordWebhookURL
func NewDiscordNotifier(cfg config.NotificationConfig, logger zerolog.Logger) (*DiscordNotifier, error) {
	moduleLogger := logger.With().Str("component", "DiscordNotifier").Logger()

	timeout := time.Duration(cfg.WebhookTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	httpClient, err := httpclient.NewHTTPClientBuilder(moduleLogger).
		WithTimeout(timeout).
		WithMaxContentSize(64 * 1024).
		Build()
	if err != nil {
		return nil, err
	}

	return &DiscordNotifier{
		logger:            moduleLogger,
		httpClient:        httpClient,
		webhookURL:        cfg.DiscordWebhookURL,
		mentionRoleIDs:    cfg.MentionRoleIDs,
		notifyOnHeartbeat: cfg.NotifyOnHeartbeat,
		now:               time.Now,
	}, nil
}

// PresentChange posts one embed for the change block
func (dn *DiscordNotifier) PresentChange(ctx context.Context, change models.RenderedChange) error {
	embed, err := dn.buildChangeEmbed(change)
	if err != nil {
		return err
	}
	payload := NewDiscordMessagePayloadBuilder().
		WithUsername(Username).
		WithRoleMentions(dn.mentionRoleIDs).
		AddEmbed(embed).
		Build()
	return dn.SendNotification(ctx, payload)
}

// PresentHeartbeat posts the "no changes" notice when heartbeats are enabled
func (dn *DiscordNotifier) PresentHeartbeat(ctx context.Context, hb models.Heartbeat) error {
	if !dn.notifyOnHeartbeat {
		return nil
	}
	embed, err := NewDiscordEmbedBuilder().
		WithTitle("Company " + hb.EntityID + ": No changes detected").
		WithDescription("No additions or removals for " + hb.Quiet.Round(time.Second).String() + ".").
		WithColor(QuietEmbedColor).
		WithTimestamp(hb.Timestamp).
		Build()
	if err != nil {
		return err
	}
	payload := NewDiscordMessagePayloadBuilder().
		WithUsername(Username).
		AddEmbed(embed).
		Build()
	return dn.SendNotification(ctx, payload)
}

// SendNotification posts payload to the configured webhook
func (dn *DiscordNotifier) SendNotification(ctx context.Context, payload DiscordMessagePayload) error {
	if dn.webhookURL == "" {
		dn.logger.Debug().Msg("Discord webhook URL is not configured, skipping notification")
		return nil
	}

	if _, err := dn.httpClient.PostJSON(ctx, dn.webhookURL, payload); err != nil {
		dn.logger.Error().Err(err).Msg("Failed to send Discord notification")
		return err
	}

	dn.logger.Debug().Int("embeds", len(payload.Embeds)).Msg("Discord notification sent successfully")
	return nil
}

func (dn *DiscordNotifier) buildChangeEmbed(change models.RenderedChange) (DiscordEmbed, error) {
	builder := NewDiscordEmbedBuilder().
		WithTitle(change.Title).
		WithColor(changeColor(change)).
		WithTimestamp(dn.now()).
		WithFooter(change.Field, "")
	if len(change.Added) > 0 {
		builder.AddField("Added", bulletList(change.Added), false)
	}
	if len(change.Removed) > 0 {
		builder.AddField("Removed", bulletList(change.Removed), false)
	}
	return builder.Build()
}

func changeColor(change models.RenderedChange) int {
	switch {
	case len(change.Added) > 0 && len(change.Removed) > 0:
		return MixedEmbedColor
	case len(change.Removed) > 0:
		return RemovedEmbedColor
	default:
		return AddedEmbedColor
	}
}

func bulletList(lines []string) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("• ")
		sb.WriteString(line)
	}
	return sb.String()
}
