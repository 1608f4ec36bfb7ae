package discord

// WebhookType enumerates the kinds of webhook.
type WebhookType int

// Webhook type values.
const (
	WebhookTypeIncoming WebhookType = iota + 1
	WebhookTypeChannelFollower
	WebhookTypeApplication
)

// Webhook is a channel webhook.
type Webhook struct {
	ID        WebhookID   `json:"id" msgpack:"id"`
	Type      WebhookType `json:"type" msgpack:"type"`
	GuildID   *GuildID    `json:"guild_id,omitempty" msgpack:"guild_id,omitempty"`
	ChannelID *ChannelID  `json:"channel_id,omitempty" msgpack:"channel_id,omitempty"`
	User      *User       `json:"user,omitempty" msgpack:"user,omitempty"`
	Name      *string     `json:"name" msgpack:"name"`
	Avatar    *string     `json:"avatar" msgpack:"avatar"`
	Token     *string     `json:"token,omitempty" msgpack:"token,omitempty"`
	URL       *string     `json:"url,omitempty" msgpack:"url,omitempty"`
}
