package discord

import (
	"strconv"
	"time"
)

// DiscordEpoch is the first second of 2015, the origin all snowflake
// timestamps are measured from, in milliseconds since the unix epoch.
const DiscordEpoch = 1420070400000

// Snowflake is a server-assigned 64 bit ID. The wire form is either a
// JSON number or a decimal string; we always emit the number form.
type Snowflake uint64

// UnmarshalJSON accepts both the number and the quoted decimal form.
func (s *Snowflake) UnmarshalJSON(b []byte) error {
	if len(b) >= 2 && b[0] == '"' {
		b = b[1 : len(b)-1]
	}

	i, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return err
	}

	*s = Snowflake(i)
	return nil
}

// MarshalJSON emits the number form.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(s), 10)), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Timestamp returns the creation time encoded in the snowflake.
func (s Snowflake) Timestamp() time.Time {
	ms := int64(s>>22) + DiscordEpoch
	return time.Unix(0, ms*int64(time.Millisecond))
}

// ChannelID is the snowflake of a channel.
type ChannelID Snowflake

// GuildID is the snowflake of a guild.
type GuildID Snowflake

// MessageID is the snowflake of a message.
type MessageID Snowflake

// RoleID is the snowflake of a role.
type RoleID Snowflake

// UserID is the snowflake of a user.
type UserID Snowflake

// WebhookID is the snowflake of a webhook.
type WebhookID Snowflake

func (id *ChannelID) UnmarshalJSON(b []byte) error { return (*Snowflake)(id).UnmarshalJSON(b) }
func (id ChannelID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id ChannelID) String() string                { return Snowflake(id).String() }

// Mention renders the channel-mention token understood by clients.
func (id ChannelID) Mention() string { return "<#" + id.String() + ">" }

func (id *GuildID) UnmarshalJSON(b []byte) error { return (*Snowflake)(id).UnmarshalJSON(b) }
func (id GuildID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id GuildID) String() string                { return Snowflake(id).String() }

func (id *MessageID) UnmarshalJSON(b []byte) error { return (*Snowflake)(id).UnmarshalJSON(b) }
func (id MessageID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id MessageID) String() string                { return Snowflake(id).String() }

func (id *RoleID) UnmarshalJSON(b []byte) error { return (*Snowflake)(id).UnmarshalJSON(b) }
func (id RoleID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id RoleID) String() string                { return Snowflake(id).String() }

// Mention renders the role-mention token.
func (id RoleID) Mention() string { return "<@&" + id.String() + ">" }

func (id *UserID) UnmarshalJSON(b []byte) error { return (*Snowflake)(id).UnmarshalJSON(b) }
func (id UserID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id UserID) String() string                { return Snowflake(id).String() }

// Mention renders the user-mention token.
func (id UserID) Mention() string { return "<@" + id.String() + ">" }

func (id *WebhookID) UnmarshalJSON(b []byte) error { return (*Snowflake)(id).UnmarshalJSON(b) }
func (id WebhookID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id WebhookID) String() string                { return Snowflake(id).String() }
