package discord

import "time"

// ChannelType enumerates the kinds of channel the server knows about.
type ChannelType int

// Channel type values.
const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
	ChannelTypeGuildNews
	ChannelTypeGuildStore
)

// Thread channel types start at 10.
const (
	ChannelTypeGuildNewsThread ChannelType = iota + 10
	ChannelTypeGuildPublicThread
	ChannelTypeGuildPrivateThread
	ChannelTypeGuildStageVoice
)

// Channel is a guild channel, DM or thread.
type Channel struct {
	ID               ChannelID   `json:"id" msgpack:"id"`
	Type             ChannelType `json:"type" msgpack:"type"`
	GuildID          *GuildID    `json:"guild_id,omitempty" msgpack:"guild_id,omitempty"`
	Position         int         `json:"position,omitempty" msgpack:"position,omitempty"`
	Name             string      `json:"name,omitempty" msgpack:"name,omitempty"`
	Topic            *string     `json:"topic,omitempty" msgpack:"topic,omitempty"`
	NSFW             bool        `json:"nsfw,omitempty" msgpack:"nsfw,omitempty"`
	LastMessageID    *MessageID  `json:"last_message_id,omitempty" msgpack:"last_message_id,omitempty"`
	Bitrate          int         `json:"bitrate,omitempty" msgpack:"bitrate,omitempty"`
	UserLimit        int         `json:"user_limit,omitempty" msgpack:"user_limit,omitempty"`
	RateLimitPerUser int         `json:"rate_limit_per_user,omitempty" msgpack:"rate_limit_per_user,omitempty"`
	Recipients       []User      `json:"recipients,omitempty" msgpack:"recipients,omitempty"`
	Icon             *string     `json:"icon,omitempty" msgpack:"icon,omitempty"`
	OwnerID          *UserID     `json:"owner_id,omitempty" msgpack:"owner_id,omitempty"`
	LastPinTimestamp *time.Time  `json:"last_pin_timestamp,omitempty" msgpack:"last_pin_timestamp,omitempty"`
	Permissions      *string     `json:"permissions,omitempty" msgpack:"permissions,omitempty"`
}

// Mention renders the channel-mention token for this channel.
func (c *Channel) Mention() string {
	return c.ID.Mention()
}
