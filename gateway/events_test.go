package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHello(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"op":10,"d":{"heartbeat_interval":41250}}`))
	require.NoError(t, err)

	hello, ok := ev.(Hello)
	require.True(t, ok)
	assert.Equal(t, 41250*time.Millisecond, hello.HeartbeatInterval)
}

func TestDecodeInvalidSession(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"op":9,"d":true}`))
	require.NoError(t, err)

	invalid, ok := ev.(InvalidSession)
	require.True(t, ok)
	assert.True(t, invalid.Resumable)

	ev, err = DecodeEvent([]byte(`{"op":9,"d":false}`))
	require.NoError(t, err)
	assert.False(t, ev.(InvalidSession).Resumable)
}

func TestDecodeMessageCreate(t *testing.T) {
	frame := `{
		"op": 0,
		"s": 7,
		"t": "MESSAGE_CREATE",
		"d": {
			"id": "857349935654051850",
			"channel_id": "794652629325447228",
			"author": {"id": "330416853971107840", "username": "rock"},
			"content": "hello world"
		}
	}`

	ev, err := DecodeEvent([]byte(frame))
	require.NoError(t, err)

	dispatch, ok := ev.(Dispatch)
	require.True(t, ok)
	assert.Equal(t, int64(7), dispatch.Sequence)
	assert.Equal(t, EventMessageCreate, dispatch.Type)

	require.NotNil(t, dispatch.Message)
	assert.Equal(t, "hello world", dispatch.Message.Content)
	assert.Equal(t, "rock", dispatch.Message.Author.Username)
	assert.Nil(t, dispatch.Ready)
}

func TestDecodeReady(t *testing.T) {
	frame := `{
		"op": 0,
		"s": 1,
		"t": "READY",
		"d": {
			"v": 10,
			"session_id": "abc",
			"user": {"id": "330416853971107840", "username": "rock"}
		}
	}`

	ev, err := DecodeEvent([]byte(frame))
	require.NoError(t, err)

	dispatch, ok := ev.(Dispatch)
	require.True(t, ok)
	require.NotNil(t, dispatch.Ready)
	assert.Equal(t, "abc", dispatch.Ready.SessionID)
	assert.Equal(t, 10, dispatch.Ready.Version)
	assert.Equal(t, int64(1), dispatch.Sequence)
}

func TestDecodeUnnamedDispatchKeepsRaw(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"op":0,"s":3,"t":"GUILD_CREATE","d":{"id":"1"}}`))
	require.NoError(t, err)

	dispatch := ev.(Dispatch)
	assert.Nil(t, dispatch.Ready)
	assert.Nil(t, dispatch.Message)
	assert.JSONEq(t, `{"id":"1"}`, string(dispatch.Raw))
}

func TestDecodeControlOps(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"op":1}`))
	require.NoError(t, err)
	assert.IsType(t, HeartbeatRequest{}, ev)

	ev, err = DecodeEvent([]byte(`{"op":7}`))
	require.NoError(t, err)
	assert.IsType(t, Reconnect{}, ev)

	ev, err = DecodeEvent([]byte(`{"op":11}`))
	require.NoError(t, err)
	assert.IsType(t, HeartbeatAck{}, ev)
}

func TestDecodeUnknownOp(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"op":42,"d":{"future":true}}`))
	require.NoError(t, err)

	unknown, ok := ev.(Unknown)
	require.True(t, ok)
	assert.Equal(t, 42, unknown.Op)
	assert.JSONEq(t, `{"future":true}`, string(unknown.Data))
}

func TestDecodeMalformedFrame(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"op":10,"d":`))
	assert.Error(t, err)
}
