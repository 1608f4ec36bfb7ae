package gateway

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Gateway op-codes. Inbound frames carry one of these in "op"; the
// outbound set is the subset this library ever sends.
const (
	OpDispatch       = 0
	OpHeartbeat      = 1
	OpIdentify       = 2
	OpPresenceUpdate = 3
	OpResume         = 6
	OpReconnect      = 7
	OpInvalidSession = 9
	OpHello          = 10
	OpHeartbeatAck   = 11
)

// Dispatch event names the library decodes into typed payloads. Any
// other name is forwarded with its raw JSON attached.
const (
	EventReady         = "READY"
	EventMessageCreate = "MESSAGE_CREATE"
)
