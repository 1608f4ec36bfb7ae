package discord

import (
	"encoding/json"
	"time"
)

// Message is a single message in a channel. Only the fields the core
// machinery needs are modelled; everything else the server sends is
// dropped on decode.
type Message struct {
	ID              MessageID       `json:"id" msgpack:"id"`
	ChannelID       ChannelID       `json:"channel_id" msgpack:"channel_id"`
	GuildID         *GuildID        `json:"guild_id,omitempty" msgpack:"guild_id,omitempty"`
	Author          User            `json:"author" msgpack:"author"`
	Member          *Member         `json:"member,omitempty" msgpack:"member,omitempty"`
	Content         string          `json:"content" msgpack:"content"`
	Timestamp       time.Time       `json:"timestamp" msgpack:"timestamp"`
	EditedTimestamp *time.Time      `json:"edited_timestamp" msgpack:"edited_timestamp"`
	TTS             bool            `json:"tts" msgpack:"tts"`
	MentionEveryone bool            `json:"mention_everyone" msgpack:"mention_everyone"`
	Mentions        []User          `json:"mentions" msgpack:"mentions"`
	MentionRoles    []RoleID        `json:"mention_roles" msgpack:"mention_roles"`
	Nonce           json.RawMessage `json:"nonce,omitempty" msgpack:"-"`
	Pinned          bool            `json:"pinned" msgpack:"pinned"`
	WebhookID       *WebhookID      `json:"webhook_id,omitempty" msgpack:"webhook_id,omitempty"`
	Type            int             `json:"type" msgpack:"type"`
	ReferencedMsg   *Message        `json:"referenced_message,omitempty" msgpack:"referenced_message,omitempty"`
}
