package gateway

import (
	jsonstd "encoding/json"
	"time"

	"github.com/harmony-chat/harmony/discord"
)

// payload is the raw envelope every inbound frame decodes into before
// classification by op-code.
type payload struct {
	Op       int                `json:"op"`
	Sequence int64              `json:"s"`
	Type     string             `json:"t"`
	Data     jsonstd.RawMessage `json:"d"`
}

// Event is one classified inbound gateway frame. The concrete types are
// Hello, Dispatch, HeartbeatRequest, Reconnect, InvalidSession,
// HeartbeatAck and Unknown.
type Event interface {
	gatewayEvent()
}

// Hello is op 10, the first frame of every connection. It advertises
// the heartbeat interval the server expects.
type Hello struct {
	HeartbeatInterval time.Duration
}

// Dispatch is op 0, a server push with a named event and a sequence
// number.
type Dispatch struct {
	DispatchEvent
}

// HeartbeatRequest is op 1 inbound: the server asks for an immediate
// heartbeat.
type HeartbeatRequest struct{}

// Reconnect is op 7: the server wants this client to reconnect and
// resume.
type Reconnect struct{}

// InvalidSession is op 9. Resumable tells the client whether the dead
// session may be resumed or must be replaced by a fresh identify.
type InvalidSession struct {
	Resumable bool
}

// HeartbeatAck is op 11, acknowledging the last heartbeat sent.
type HeartbeatAck struct{}

// Unknown is any op-code this library does not consume. The raw d
// payload is preserved so future server additions never fail decode.
type Unknown struct {
	Op   int
	Data jsonstd.RawMessage
}

func (Hello) gatewayEvent()            {}
func (Dispatch) gatewayEvent()         {}
func (HeartbeatRequest) gatewayEvent() {}
func (Reconnect) gatewayEvent()        {}
func (InvalidSession) gatewayEvent()   {}
func (HeartbeatAck) gatewayEvent()     {}
func (Unknown) gatewayEvent()          {}

// DispatchEvent is a single server push, already classified by its
// event name. Exactly one of Ready and Message is set for the names the
// library understands; everything else keeps its raw payload.
type DispatchEvent struct {
	Sequence int64
	Type     string

	Ready   *discord.Ready
	Message *discord.Message
	Raw     jsonstd.RawMessage
}

// DecodeEvent classifies one inbound text frame. Frames with a known op
// but a malformed d payload return an error; the caller drops them.
func DecodeEvent(data []byte) (Event, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	switch p.Op {
	case OpDispatch:
		ev := DispatchEvent{
			Sequence: p.Sequence,
			Type:     p.Type,
			Raw:      p.Data,
		}
		switch p.Type {
		case EventReady:
			ready := &discord.Ready{}
			if err := json.Unmarshal(p.Data, ready); err != nil {
				return nil, err
			}
			ev.Ready = ready
		case EventMessageCreate:
			msg := &discord.Message{}
			if err := json.Unmarshal(p.Data, msg); err != nil {
				return nil, err
			}
			ev.Message = msg
		}
		return Dispatch{ev}, nil
	case OpHeartbeat:
		return HeartbeatRequest{}, nil
	case OpReconnect:
		return Reconnect{}, nil
	case OpInvalidSession:
		var resumable bool
		if err := json.Unmarshal(p.Data, &resumable); err != nil {
			return nil, err
		}
		return InvalidSession{Resumable: resumable}, nil
	case OpHello:
		var h struct {
			HeartbeatInterval int64 `json:"heartbeat_interval"`
		}
		if err := json.Unmarshal(p.Data, &h); err != nil {
			return nil, err
		}
		return Hello{
			HeartbeatInterval: time.Duration(h.HeartbeatInterval) * time.Millisecond,
		}, nil
	case OpHeartbeatAck:
		return HeartbeatAck{}, nil
	}

	return Unknown{Op: p.Op, Data: p.Data}, nil
}

// Outbound envelopes.

type heartbeatPayload struct {
	Op int    `json:"op"`
	D  *int64 `json:"d"`
}

type identifyProperties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

type identifyData struct {
	Token      string             `json:"token"`
	Properties identifyProperties `json:"properties"`
	Intents    Intents            `json:"intents"`
}

type identifyPayload struct {
	Op int          `json:"op"`
	D  identifyData `json:"d"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  int64  `json:"seq"`
}

type resumePayload struct {
	Op int        `json:"op"`
	D  resumeData `json:"d"`
}

type presenceData struct {
	Since      *int64              `json:"since"`
	Activities []*discord.Activity `json:"activities"`
	Status     discord.Status      `json:"status"`
	AFK        bool                `json:"afk"`
}

type presencePayload struct {
	Op int          `json:"op"`
	D  presenceData `json:"d"`
}
