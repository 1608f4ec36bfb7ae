// Package harmony is a client library for the Discord chat service. It
// maintains a gateway websocket session (identify, heartbeat, resume),
// funnels dispatched events through an unbounded queue into serial user
// callbacks, and exposes a rate-limited typed REST client.
package harmony

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/harmony-chat/harmony/discord"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Version is re-exported from the wire model so embedders do not need
// the discord package just to report it.
const Version = discord.Version
