//go:build unit || e2e

package builder

import (
	"net/url"
	"strings"

	"parkingbot/internal/usecase/commands"
)

type WebhookBuilder struct {
	Token       string
	TeamID      string
	TeamDomain  string
	ChannelID   string
	ChannelName string
	Timestamp   string
	UserID      string
	UserName    string
	Text        string
	TriggerWord string
}

func NewWebhookBuilder() *WebhookBuilder {
	return &WebhookBuilder{
		Token:       "test-webhook-token",
		TeamID:      "T0001",
		TeamDomain:  "example",
		ChannelID:   "C2147483705",
		ChannelName: "parking",
		Timestamp:   "1355517523.000005",
		UserID:      "U1",
		UserName:    "steve",
		Text:        "parkingbot help",
		TriggerWord: "parkingbot",
	}
}

func (b *WebhookBuilder) With(mutate func(*WebhookBuilder)) *WebhookBuilder {
	mutate(b)
	return b
}

// WithText also derives the trigger word from the first word of text.
func (b *WebhookBuilder) WithText(text string) *WebhookBuilder {
	b.Text = text
	b.TriggerWord = strings.SplitN(text, " ", 2)[0]
	return b
}

// Build methods
func (b *WebhookBuilder) BuildForm(muts ...func(url.Values)) url.Values {
	form := url.Values{
		"token":        {b.Token},
		"team_id":      {b.TeamID},
		"team_domain":  {b.TeamDomain},
		"channel_id":   {b.ChannelID},
		"channel_name": {b.ChannelName},
		"timestamp":    {b.Timestamp},
		"user_id":      {b.UserID},
		"user_name":    {b.UserName},
		"text":         {b.Text},
		"trigger_word": {b.TriggerWord},
	}
	for _, f := range muts {
		f(form)
	}
	return form
}

func (b *WebhookBuilder) BuildCommand() commands.Command {
	return commands.Command{
		Token:       b.Token,
		TeamID:      b.TeamID,
		ChannelID:   b.ChannelID,
		ChannelName: b.ChannelName,
		UserID:      b.UserID,
		UserName:    b.UserName,
		Text:        b.Text,
		TriggerWord: b.TriggerWord,
	}
}

// WebhookForm is the common case: one message from userID in channel.
func WebhookForm(token, channel, userID, text string) url.Values {
	return NewWebhookBuilder().
		WithText(text).
		With(func(b *WebhookBuilder) {
			b.Token = token
			b.ChannelName = channel
			b.UserID = userID
		}).
		BuildForm()
}
