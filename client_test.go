package harmony

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/gateway"
)

func TestBuilderRequiresToken(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBuilderPrefixesTokens(t *testing.T) {
	c, err := NewBuilder().WithBotToken("abc").Build()
	require.NoError(t, err)
	assert.Equal(t, "Bot abc", c.token)

	c, err = NewBuilder().WithBearerToken("xyz").Build()
	require.NoError(t, err)
	assert.Equal(t, "Bearer xyz", c.token)
}

func TestBuilderWiresCallbacksAndIntents(t *testing.T) {
	c, err := NewBuilder().
		WithBotToken("abc").
		WithIntents(gateway.IntentGuilds|gateway.IntentGuildMessages).
		OnReady(func(*Context, *discord.Ready) error { return nil }).
		OnMessageCreate(func(*Context, *discord.Message) error { return nil }).
		OnError(func(error) {}).
		WithLogger(zerolog.Nop()).
		Build()
	require.NoError(t, err)

	assert.True(t, c.intents.Has(gateway.IntentGuilds))
	assert.True(t, c.intents.Has(gateway.IntentGuildMessages))
	assert.NotNil(t, c.handlers.OnReady)
	assert.NotNil(t, c.handlers.OnMessageCreate)
	assert.NotNil(t, c.handlers.OnError)
	assert.NotNil(t, c.Rest())
}

func TestRunDeliversEventsEndToEnd(t *testing.T) {
	c, err := NewBuilder().
		WithBotToken("abc").
		WithLogger(zerolog.Nop()).
		OnReady(func(ctx *Context, ready *discord.Ready) error {
			return nil
		}).
		Build()
	require.NoError(t, err)

	conn := newFakeConn()
	c.connect = func() (Connection, error) { return conn, nil }

	var readies int64
	c.handlers.OnReady = func(ctx *Context, ready *discord.Ready) error {
		atomic.AddInt64(&readies, 1)
		c.Stop()
		return nil
	}

	conn.feed(gateway.Hello{HeartbeatInterval: time.Minute})
	conn.feed(readyDispatch("abc", 1))

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&readies))

	got := conn.snapshot()
	assert.Equal(t, []string{"Bot abc"}, got.identifies)
	assert.Contains(t, got.calls, "close")
}

func TestRunRestartsAfterConnectError(t *testing.T) {
	c, err := NewBuilder().WithBotToken("abc").WithLogger(zerolog.Nop()).Build()
	require.NoError(t, err)

	var attempts int64
	c.connect = func() (Connection, error) {
		if atomic.AddInt64(&attempts, 1) == 2 {
			c.Stop()
		}
		return nil, errors.New("dial failed")
	}

	start := time.Now()
	require.NoError(t, c.Run())

	// Both attempts failed, with the supervisor delay between them.
	assert.Equal(t, int64(2), atomic.LoadInt64(&attempts))
	assert.GreaterOrEqual(t, time.Since(start), reconnectDelay)
}

func TestHeartbeatLatencyWithoutSession(t *testing.T) {
	c, err := NewBuilder().WithBotToken("abc").Build()
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), c.HeartbeatLatency())
}
