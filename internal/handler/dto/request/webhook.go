package request

import (
	"log/slog"

	"parkingbot/internal/usecase/commands"
)

// WebhookRequest is the form body of a Slack outgoing webhook.
type WebhookRequest struct {
	Token       string `form:"token"`
	TeamID      string `form:"team_id"`
	TeamDomain  string `form:"team_domain"`
	ChannelID   string `form:"channel_id"`
	ChannelName string `form:"channel_name"`
	Timestamp   string `form:"timestamp"`
	UserID      string `form:"user_id"`
	UserName    string `form:"user_name"`
	Text        string `form:"text"`
	TriggerWord string `form:"trigger_word"`
}

func (r WebhookRequest) ToCommand() commands.Command {
	return commands.Command{
		Token:       r.Token,
		TeamID:      r.TeamID,
		ChannelID:   r.ChannelID,
		ChannelName: r.ChannelName,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Text:        r.Text,
		TriggerWord: r.TriggerWord,
	}
}

// LogValue keeps the shared token out of the logs.
func (r WebhookRequest) LogValue() slog.Value {
	token := ""
	if r.Token != "" {
		token = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("token", token),
		slog.String("team_id", r.TeamID),
		slog.String("team_domain", r.TeamDomain),
		slog.String("channel_id", r.ChannelID),
		slog.String("channel_name", r.ChannelName),
		slog.String("timestamp", r.Timestamp),
		slog.String("user_id", r.UserID),
		slog.String("user_name", r.UserName),
		slog.String("text", r.Text),
		slog.String("trigger_word", r.TriggerWord),
	)
}
