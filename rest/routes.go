package rest

import (
	"fmt"

	"github.com/harmony-chat/harmony/discord"
)

type routeKind int

const (
	routeChannel routeKind = iota + 1
	routeChannelMessage
	routeGuild
	routeGuildMember
	routeWebhook
)

// Route is the client-side rate-limit bucket key for a request. Buckets
// partition along the same dimensions the server buckets on: posts to a
// channel share the channel bucket, while edits and deletes of a single
// message have their own, and per-member role changes are keyed on the
// (guild, user) pair. Routes are comparable and usable as map keys.
type Route struct {
	kind routeKind
	a, b discord.Snowflake
}

// ChannelRoute keys message posts and other per-channel requests.
func ChannelRoute(channelID discord.ChannelID) Route {
	return Route{kind: routeChannel, a: discord.Snowflake(channelID)}
}

// ChannelMessageRoute keys edits and deletes of one message.
func ChannelMessageRoute(channelID discord.ChannelID, messageID discord.MessageID) Route {
	return Route{kind: routeChannelMessage, a: discord.Snowflake(channelID), b: discord.Snowflake(messageID)}
}

// GuildRoute keys per-guild requests.
func GuildRoute(guildID discord.GuildID) Route {
	return Route{kind: routeGuild, a: discord.Snowflake(guildID)}
}

// GuildMemberRoute keys role changes on one member.
func GuildMemberRoute(guildID discord.GuildID, userID discord.UserID) Route {
	return Route{kind: routeGuildMember, a: discord.Snowflake(guildID), b: discord.Snowflake(userID)}
}

// WebhookRoute keys webhook executions and webhook message deletes.
func WebhookRoute(webhookID discord.WebhookID) Route {
	return Route{kind: routeWebhook, a: discord.Snowflake(webhookID)}
}

func (r Route) String() string {
	switch r.kind {
	case routeChannel:
		return fmt.Sprintf("channel:%s", r.a)
	case routeChannelMessage:
		return fmt.Sprintf("channel:%s:message:%s", r.a, r.b)
	case routeGuild:
		return fmt.Sprintf("guild:%s", r.a)
	case routeGuildMember:
		return fmt.Sprintf("guild:%s:member:%s", r.a, r.b)
	case routeWebhook:
		return fmt.Sprintf("webhook:%s", r.a)
	}
	return "unknown"
}

// optional returns a *Route for the operations that carry one.
func optional(r Route) *Route {
	return &r
}
