package response

// WebhookResponse is posted back into the channel by Slack.
type WebhookResponse struct {
	Text      string `json:"text"`
	LinkNames int    `json:"link_names"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

func NewWebhookResponse(text, username, iconEmoji string) WebhookResponse {
	return WebhookResponse{
		Text:      text,
		LinkNames: 1,
		Username:  username,
		IconEmoji: iconEmoji,
	}
}
