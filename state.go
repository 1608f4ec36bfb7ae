package harmony

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack"

	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/gateway"
)

// ErrStateNotFound is returned by State getters for uncached entities.
var ErrStateNotFound = errors.New("harmony: entity not present in state")

// StateOptions configures the redis-backed world cache.
type StateOptions struct {
	Address  string
	Password string
	Database int

	// Prefix namespaces every key, so several bots can share one redis.
	Prefix string
}

// State mirrors channel, role and member events into redis, keyed under
// a configurable prefix. Entities are stored msgpack-encoded.
type State struct {
	client *redis.Client
	prefix string
}

// NewState connects the cache. The connection is lazy; the first Apply
// or getter surfaces dial errors.
func NewState(options StateOptions) *State {
	return &State{
		client: redis.NewClient(&redis.Options{
			Addr:     options.Address,
			Password: options.Password,
			DB:       options.Database,
		}),
		prefix: options.Prefix,
	}
}

func (s *State) channelsKey() string {
	return fmt.Sprintf("%s:channels", s.prefix)
}

func (s *State) rolesKey(guildID discord.GuildID) string {
	return fmt.Sprintf("%s:guild:%s:roles", s.prefix, guildID)
}

func (s *State) membersKey(guildID discord.GuildID) string {
	return fmt.Sprintf("%s:guild:%s:members", s.prefix, guildID)
}

// Apply folds one dispatch event into the cache. Events the cache does
// not track are ignored.
func (s *State) Apply(ev *gateway.DispatchEvent) error {
	ctx := context.Background()

	switch ev.Type {
	case "CHANNEL_CREATE", "CHANNEL_UPDATE":
		var channel discord.Channel
		if err := json.Unmarshal(ev.Raw, &channel); err != nil {
			return err
		}
		return s.setChannel(ctx, &channel)

	case "CHANNEL_DELETE":
		var channel discord.Channel
		if err := json.Unmarshal(ev.Raw, &channel); err != nil {
			return err
		}
		return s.client.HDel(ctx, s.channelsKey(), channel.ID.String()).Err()

	case "GUILD_ROLE_CREATE", "GUILD_ROLE_UPDATE":
		var body struct {
			GuildID discord.GuildID `json:"guild_id"`
			Role    discord.Role    `json:"role"`
		}
		if err := json.Unmarshal(ev.Raw, &body); err != nil {
			return err
		}
		return s.setRole(ctx, body.GuildID, &body.Role)

	case "GUILD_ROLE_DELETE":
		var body struct {
			GuildID discord.GuildID `json:"guild_id"`
			RoleID  discord.RoleID  `json:"role_id"`
		}
		if err := json.Unmarshal(ev.Raw, &body); err != nil {
			return err
		}
		return s.client.HDel(ctx, s.rolesKey(body.GuildID), body.RoleID.String()).Err()

	case "GUILD_MEMBER_ADD", "GUILD_MEMBER_UPDATE":
		var body struct {
			discord.Member
			GuildID discord.GuildID `json:"guild_id"`
		}
		if err := json.Unmarshal(ev.Raw, &body); err != nil {
			return err
		}
		if body.Member.User == nil {
			return nil
		}
		return s.setMember(ctx, body.GuildID, &body.Member)

	case "GUILD_MEMBER_REMOVE":
		var body struct {
			GuildID discord.GuildID `json:"guild_id"`
			User    discord.User    `json:"user"`
		}
		if err := json.Unmarshal(ev.Raw, &body); err != nil {
			return err
		}
		return s.client.HDel(ctx, s.membersKey(body.GuildID), body.User.ID.String()).Err()
	}

	return nil
}

func (s *State) setChannel(ctx context.Context, channel *discord.Channel) error {
	enc, err := msgpack.Marshal(channel)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.channelsKey(), channel.ID.String(), enc).Err()
}

func (s *State) setRole(ctx context.Context, guildID discord.GuildID, role *discord.Role) error {
	enc, err := msgpack.Marshal(role)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.rolesKey(guildID), role.ID.String(), enc).Err()
}

func (s *State) setMember(ctx context.Context, guildID discord.GuildID, member *discord.Member) error {
	enc, err := msgpack.Marshal(member)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.membersKey(guildID), member.User.ID.String(), enc).Err()
}

// Channel fetches a cached channel.
func (s *State) Channel(ctx context.Context, channelID discord.ChannelID) (*discord.Channel, error) {
	val, err := s.client.HGet(ctx, s.channelsKey(), channelID.String()).Result()
	if err == redis.Nil {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}

	channel := &discord.Channel{}
	if err := msgpack.Unmarshal([]byte(val), channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// Role fetches a cached role of a guild.
func (s *State) Role(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID) (*discord.Role, error) {
	val, err := s.client.HGet(ctx, s.rolesKey(guildID), roleID.String()).Result()
	if err == redis.Nil {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}

	role := &discord.Role{}
	if err := msgpack.Unmarshal([]byte(val), role); err != nil {
		return nil, err
	}
	return role, nil
}

// Member fetches a cached guild member.
func (s *State) Member(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	val, err := s.client.HGet(ctx, s.membersKey(guildID), userID.String()).Result()
	if err == redis.Nil {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}

	member := &discord.Member{}
	if err := msgpack.Unmarshal([]byte(val), member); err != nil {
		return nil, err
	}
	return member, nil
}

// Clear drops every key under the configured prefix.
func (s *State) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("%s:*", s.prefix), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the redis connection.
func (s *State) Close() error {
	return s.client.Close()
}
