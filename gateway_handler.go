package harmony

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/gateway"
)

// Connection is the gateway surface the session machine drives. It is
// satisfied by *gateway.Gateway.
type Connection interface {
	PollEvents(timeout time.Duration) ([]gateway.Event, error)
	Heartbeat(sequence *int64) error
	Identify(token string) error
	Resume(token, sessionID string, sequence int64) error
	PresenceUpdate(status discord.Status, activity *discord.Activity) error
	Reconnect() error
	Close() error
}

// GatewayHandler runs the session state machine over one Connection:
// heartbeat timing, ack tracking, resume and re-identify policy.
// Dispatched events are forwarded to the event queue in arrival order.
type GatewayHandler struct {
	conn  Connection
	token string
	queue *eventQueue
	log   zerolog.Logger

	sessionID         string
	sequence          int64
	hasSequence       bool
	heartbeatInterval time.Duration

	lastHeartbeat    time.Time
	lastHeartbeatAck bool

	// Round-trip bookkeeping for HeartbeatLatency.
	mu         sync.Mutex
	lastSentAt time.Time
	lastAckAt  time.Time

	// Overridable in tests.
	sleep  func(time.Duration)
	jitter func() time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewGatewayHandler creates a session machine over conn. The first
// heartbeat is considered acknowledged so a fresh connection is not
// immediately declared dead.
func NewGatewayHandler(conn Connection, token string, queue *eventQueue, log zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{
		conn:  conn,
		token: token,
		queue: queue,
		log:   log,

		lastHeartbeat:    time.Now(),
		lastHeartbeatAck: true,

		sleep:  time.Sleep,
		jitter: reconnectJitter,

		stop: make(chan struct{}),
	}
}

// reconnectJitter picks a uniformly random backoff in [1s, 5s), spreading
// simultaneous reconnects across clients.
func reconnectJitter() time.Duration {
	return time.Second + time.Duration(rand.Int63n(int64(4*time.Second)))
}

// Run drives the state machine until Stop is called or the link fails.
// Transport errors are returned to the supervisor; frame parse errors
// were already dropped inside PollEvents.
func (h *GatewayHandler) Run() error {
	for {
		select {
		case <-h.stop:
			return nil
		default:
		}

		if err := h.checkHeartbeat(); err != nil {
			return err
		}

		events, err := h.conn.PollEvents(gateway.DefaultPollTimeout)
		if err != nil {
			return err
		}

		for _, ev := range events {
			if err := h.handle(ev); err != nil {
				return err
			}
		}
	}
}

// Stop makes Run return after its current iteration.
func (h *GatewayHandler) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// checkHeartbeat sends a heartbeat once per interval. A missing ack
// since the previous send means the link is dead, so the session is
// reconnected and resumed first.
func (h *GatewayHandler) checkHeartbeat() error {
	if h.heartbeatInterval <= 0 {
		return nil
	}
	if time.Since(h.lastHeartbeat) < h.heartbeatInterval {
		return nil
	}

	if !h.lastHeartbeatAck {
		h.log.Warn().
			Str("session", h.sessionID).
			Msg("heartbeat ack not received, reconnecting")

		h.sleep(h.jitter())
		if err := h.reconnectAndResume(); err != nil {
			return err
		}
	}

	return h.sendHeartbeat()
}

func (h *GatewayHandler) sendHeartbeat() error {
	var seq *int64
	if h.hasSequence {
		s := h.sequence
		seq = &s
	}

	h.log.Debug().Int64("seq", h.sequence).Msg("sending heartbeat")

	if err := h.conn.Heartbeat(seq); err != nil {
		return err
	}

	h.mu.Lock()
	h.lastSentAt = time.Now()
	h.mu.Unlock()

	h.lastHeartbeat = time.Now()
	h.lastHeartbeatAck = false
	return nil
}

// reconnectAndResume swaps the underlying socket and resumes the
// session. Without a session yet there is nothing to resume; the Hello
// on the fresh connection triggers an identify instead.
func (h *GatewayHandler) reconnectAndResume() error {
	if err := h.conn.Reconnect(); err != nil {
		return err
	}

	h.lastHeartbeat = time.Now()
	h.lastHeartbeatAck = true

	if h.sessionID == "" {
		return nil
	}
	return h.conn.Resume(h.token, h.sessionID, h.sequence)
}

func (h *GatewayHandler) handle(ev gateway.Event) error {
	switch e := ev.(type) {
	case gateway.Hello:
		h.heartbeatInterval = e.HeartbeatInterval
		h.log.Debug().Dur("interval", e.HeartbeatInterval).Msg("received hello")

		// On a resumed connection the resume frame already went out.
		if h.sessionID == "" {
			return h.conn.Identify(h.token)
		}
		return nil

	case gateway.Dispatch:
		return h.dispatch(e.DispatchEvent)

	case gateway.HeartbeatRequest:
		return h.sendHeartbeat()

	case gateway.HeartbeatAck:
		h.lastHeartbeatAck = true
		h.mu.Lock()
		h.lastAckAt = time.Now()
		h.mu.Unlock()
		return nil

	case gateway.Reconnect:
		h.log.Info().Str("session", h.sessionID).Msg("server requested reconnect")
		return h.reconnectAndResume()

	case gateway.InvalidSession:
		h.log.Warn().Bool("resumable", e.Resumable).Msg("session invalidated")
		h.sleep(h.jitter())

		if !e.Resumable {
			h.sessionID = ""
			h.hasSequence = false
			h.sequence = 0
		}
		return h.reconnectAndResume()

	case gateway.Unknown:
		h.log.Debug().Int("op", e.Op).Msg("ignoring unknown gateway op")
		return nil

	default:
		return nil
	}
}

func (h *GatewayHandler) dispatch(ev gateway.DispatchEvent) error {
	if ev.Ready != nil {
		h.sessionID = ev.Ready.SessionID
		h.log.Info().
			Str("session", h.sessionID).
			Str("user", ev.Ready.User.Username).
			Msg("session ready")
	}

	if err := h.queue.Push(&ev); err != nil {
		return err
	}

	h.sequence = ev.Sequence
	h.hasSequence = true
	return nil
}

// HeartbeatLatency is the round trip between the last heartbeat sent
// and the ack that answered it.
func (h *GatewayHandler) HeartbeatLatency() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastAckAt.Sub(h.lastSentAt)
}
