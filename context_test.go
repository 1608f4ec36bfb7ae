package harmony

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/rest"
)

func TestParseChannel(t *testing.T) {
	channels := []discord.Channel{
		{ID: 100, Name: "general"},
		{ID: 200, Name: "random"},
	}

	id, ok := ParseChannel("<#794652629325447228>", nil)
	require.True(t, ok)
	assert.Equal(t, discord.ChannelID(794652629325447228), id)

	id, ok = ParseChannel("200", channels)
	require.True(t, ok)
	assert.Equal(t, discord.ChannelID(200), id)

	id, ok = ParseChannel("general", channels)
	require.True(t, ok)
	assert.Equal(t, discord.ChannelID(100), id)

	_, ok = ParseChannel("missing", channels)
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	roles := []discord.Role{{ID: 300, Name: "mods"}}

	id, ok := ParseRole("<@&300>", nil)
	require.True(t, ok)
	assert.Equal(t, discord.RoleID(300), id)

	id, ok = ParseRole("mods", roles)
	require.True(t, ok)
	assert.Equal(t, discord.RoleID(300), id)

	_, ok = ParseRole("<@300>", nil)
	assert.False(t, ok, "a user mention is not a role")
}

func TestParseMember(t *testing.T) {
	members := []discord.Member{
		{User: &discord.User{ID: 400, Username: "alice"}},
		{User: nil},
	}

	id, ok := ParseMember("<@400>", nil)
	require.True(t, ok)
	assert.Equal(t, discord.UserID(400), id)

	id, ok = ParseMember("<@!400>", nil)
	require.True(t, ok)
	assert.Equal(t, discord.UserID(400), id)

	id, ok = ParseMember("alice", members)
	require.True(t, ok)
	assert.Equal(t, discord.UserID(400), id)

	_, ok = ParseMember("bob", members)
	assert.False(t, ok)

	_, ok = ParseMember("", nil)
	assert.False(t, ok)
}

func TestContextFindHelpers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/channels"):
			fmt.Fprint(w, `[{"id":"100","type":0,"name":"general"}]`)
		case strings.HasSuffix(r.URL.Path, "/roles"):
			fmt.Fprint(w, `[{"id":"300","name":"mods","color":0,"hoist":false,"position":1,"permissions":"0","managed":false,"mentionable":false}]`)
		case strings.Contains(r.URL.Path, "/members/400"):
			fmt.Fprint(w, `{"user":{"id":"400","username":"alice"},"nick":null,"roles":[]}`)
		case strings.Contains(r.URL.Path, "/members/search"):
			fmt.Fprint(w, `[{"user":{"id":"400","username":"alice"},"nick":null,"roles":[]}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	restClient := rest.NewClient("Bot tok", zerolog.Nop())
	restClient.BaseURL = server.URL
	ctx := &Context{Client: restClient, conn: newFakeConn()}

	channel, err := ctx.FindChannel(1, "general")
	require.NoError(t, err)
	require.NotNil(t, channel)
	assert.Equal(t, discord.ChannelID(100), channel.ID)

	role, err := ctx.FindRole(1, "<@&300>")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "mods", role.Name)

	member, err := ctx.FindMember(1, "<@400>")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "alice", member.User.Username)

	member, err = ctx.FindMember(1, "alice")
	require.NoError(t, err)
	require.NotNil(t, member)

	missing, err := ctx.FindRole(1, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContextUpdatePresence(t *testing.T) {
	conn := newFakeConn()
	ctx := &Context{conn: conn}

	require.NoError(t, ctx.UpdatePresence(discord.StatusOnline, discord.Playing("chess")))
	assert.Contains(t, conn.calls, "presence")
}
