package harmony

import (
	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/rest"
)

// Context is handed to every callback invocation. It carries the REST
// client and a handle back to the gateway for presence updates.
type Context struct {
	*rest.Client

	conn Connection
}

// UpdatePresence publishes a new presence on the gateway. A nil
// activity clears the current one.
func (c *Context) UpdatePresence(status discord.Status, activity *discord.Activity) error {
	return c.conn.PresenceUpdate(status, activity)
}

// FindChannel resolves a raw token (mention, snowflake or name) to one
// of the guild's channels.
func (c *Context) FindChannel(guildID discord.GuildID, arg string) (*discord.Channel, error) {
	channels, err := c.GetGuildChannels(guildID)
	if err != nil {
		return nil, err
	}

	id, ok := ParseChannel(arg, channels)
	if !ok {
		return nil, nil
	}
	for i := range channels {
		if channels[i].ID == id {
			return &channels[i], nil
		}
	}
	return c.GetChannel(id)
}

// FindRole resolves a raw token (mention, snowflake or name) to one of
// the guild's roles.
func (c *Context) FindRole(guildID discord.GuildID, arg string) (*discord.Role, error) {
	roles, err := c.GetGuildRoles(guildID)
	if err != nil {
		return nil, err
	}

	id, ok := ParseRole(arg, roles)
	if !ok {
		return nil, nil
	}
	for i := range roles {
		if roles[i].ID == id {
			return &roles[i], nil
		}
	}
	return nil, nil
}

// FindMember resolves a raw token (mention, snowflake or username) to a
// guild member.
func (c *Context) FindMember(guildID discord.GuildID, arg string) (*discord.Member, error) {
	if id, ok := parseMentionID(arg, "<@!", ">"); ok {
		return c.GetGuildMember(guildID, discord.UserID(id))
	}
	if id, ok := parseMentionID(arg, "<@", ">"); ok {
		return c.GetGuildMember(guildID, discord.UserID(id))
	}
	if id, ok := parseSnowflake(arg); ok {
		return c.GetGuildMember(guildID, discord.UserID(id))
	}

	found, err := c.SearchGuildMembers(guildID, arg)
	if err != nil {
		return nil, err
	}
	for i := range found {
		if found[i].User != nil && found[i].User.Username == arg {
			return &found[i], nil
		}
	}
	return nil, nil
}

// ParseChannel extracts a channel ID from a raw mention like <#123>, a
// plain snowflake, or a channel name resolved against channels.
func ParseChannel(arg string, channels []discord.Channel) (discord.ChannelID, bool) {
	if id, ok := parseMentionID(arg, "<#", ">"); ok {
		return discord.ChannelID(id), true
	}
	if id, ok := parseSnowflake(arg); ok {
		return discord.ChannelID(id), true
	}
	for _, ch := range channels {
		if ch.Name == arg {
			return ch.ID, true
		}
	}
	return 0, false
}

// ParseRole extracts a role ID from a raw mention like <@&123>, a plain
// snowflake, or a role name resolved against roles.
func ParseRole(arg string, roles []discord.Role) (discord.RoleID, bool) {
	if id, ok := parseMentionID(arg, "<@&", ">"); ok {
		return discord.RoleID(id), true
	}
	if id, ok := parseSnowflake(arg); ok {
		return discord.RoleID(id), true
	}
	for _, role := range roles {
		if role.Name == arg {
			return role.ID, true
		}
	}
	return 0, false
}

// ParseMember extracts a user ID from a raw mention like <@123> or
// <@!123>, a plain snowflake, or a username resolved against members.
func ParseMember(arg string, members []discord.Member) (discord.UserID, bool) {
	if id, ok := parseMentionID(arg, "<@!", ">"); ok {
		return discord.UserID(id), true
	}
	if id, ok := parseMentionID(arg, "<@", ">"); ok {
		return discord.UserID(id), true
	}
	if id, ok := parseSnowflake(arg); ok {
		return discord.UserID(id), true
	}
	for _, member := range members {
		if member.User != nil && member.User.Username == arg {
			return member.User.ID, true
		}
	}
	return 0, false
}

func parseMentionID(arg, prefix, suffix string) (discord.Snowflake, bool) {
	if len(arg) <= len(prefix)+len(suffix) {
		return 0, false
	}
	if arg[:len(prefix)] != prefix || arg[len(arg)-len(suffix):] != suffix {
		return 0, false
	}
	return parseSnowflake(arg[len(prefix) : len(arg)-len(suffix)])
}

func parseSnowflake(arg string) (discord.Snowflake, bool) {
	if arg == "" {
		return 0, false
	}
	var id discord.Snowflake
	for _, r := range arg {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + discord.Snowflake(r-'0')
	}
	return id, true
}
