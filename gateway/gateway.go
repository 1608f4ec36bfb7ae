// Package gateway owns the WebSocket connection to the chat gateway:
// dialing, the readiness poll, frame decoding and the send primitives.
// Session semantics (identify/resume policy, heartbeat clock) live with
// the caller; this package only moves correctly framed payloads.
package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/harmony-chat/harmony/discord"
)

// ErrNotConnected is returned by any operation on a Gateway whose
// socket is gone.
var ErrNotConnected = errors.New("gateway: no websocket connection exists")

// ErrBadHandshake is returned by Connect when the WebSocket upgrade is
// rejected.
var ErrBadHandshake = errors.New("gateway: websocket handshake failed")

// DefaultPollTimeout is how long PollEvents waits for the first frame.
// It is short so the caller's heartbeat clock stays responsive.
const DefaultPollTimeout = time.Millisecond

// frameBuffer bounds the frames decoded ahead of the caller's poll.
const frameBuffer = 128

// Gateway is the single WebSocket for one session. All writes and all
// connection swaps take the coarse lock; reads run on an internal pump
// goroutine so polling never blocks a writer.
type Gateway struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	frames  chan []byte
	readErr chan error
	done    chan struct{}

	url     string
	intents Intents
	client  *http.Client
	log     zerolog.Logger
}

type gatewayResponse struct {
	URL string `json:"url"`
}

// Connect resolves the gateway URL over REST and opens the WebSocket.
func Connect(intents Intents, log zerolog.Logger) (*Gateway, error) {
	client := &http.Client{Timeout: 20 * time.Second}

	url, err := fetchGatewayURL(client)
	if err != nil {
		return nil, err
	}

	return ConnectURL(url, intents, log)
}

// ConnectURL opens the WebSocket against an already resolved gateway
// URL. The version and encoding query is appended here.
func ConnectURL(url string, intents Intents, log zerolog.Logger) (*Gateway, error) {
	g := &Gateway{
		url:     fmt.Sprintf("%s/?v=%d&encoding=json", url, discord.APIVersion),
		intents: intents,
		client:  &http.Client{Timeout: 20 * time.Second},
		log:     log,
	}

	if err := g.dial(); err != nil {
		return nil, err
	}

	return g, nil
}

func fetchGatewayURL(client *http.Client) (string, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v%d/gateway", discord.APIURL, discord.APIVersion))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var gr gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}

	return gr.URL, nil
}

// dial opens a fresh socket and starts its read pump. Callers must not
// hold g.mu.
func (g *Gateway) dial() error {
	g.log.Debug().Str("gateway", g.url).Msg("connecting to gateway")

	conn, _, err := websocket.DefaultDialer.Dial(g.url, nil)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) {
			return fmt.Errorf("%w: %s", ErrBadHandshake, g.url)
		}
		return err
	}

	frames := make(chan []byte, frameBuffer)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	go pump(conn, frames, readErr, done)

	g.mu.Lock()
	g.conn = conn
	g.frames = frames
	g.readErr = readErr
	g.done = done
	g.mu.Unlock()

	return nil
}

// pump reads frames off one socket until it dies. Text frames are
// forwarded raw; everything else is dropped on the floor.
func pump(conn *websocket.Conn, frames chan<- []byte, readErr chan<- error, done <-chan struct{}) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			readErr <- err
			close(frames)
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		select {
		case frames <- data:
		case <-done:
			return
		}
	}
}

// PollEvents returns every event that is immediately available, waiting
// at most timeout for the first one. It returns nil, nil when nothing
// arrived in time. Frames that fail to decode are dropped.
func (g *Gateway) PollEvents(timeout time.Duration) ([]Event, error) {
	g.mu.Lock()
	frames, readErr := g.frames, g.readErr
	g.mu.Unlock()

	if frames == nil {
		return nil, ErrNotConnected
	}

	var events []Event

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data, ok := <-frames:
		if !ok {
			return nil, <-readErr
		}
		events = g.appendEvent(events, data)
	case <-timer.C:
		return nil, nil
	}

	// Drain whatever else already arrived without waiting again.
	for {
		select {
		case data, ok := <-frames:
			if !ok {
				return events, <-readErr
			}
			events = g.appendEvent(events, data)
		default:
			return events, nil
		}
	}
}

func (g *Gateway) appendEvent(events []Event, data []byte) []Event {
	event, err := DecodeEvent(data)
	if err != nil {
		g.log.Debug().Err(err).Msg("dropping undecodable gateway frame")
		return events
	}
	return append(events, event)
}

// Close sends a close frame, drains until the peer's close is observed
// or the connection is gone, then tears the socket down. Idempotent.
func (g *Gateway) Close() error {
	g.mu.Lock()
	conn, readErr, done := g.conn, g.readErr, g.done
	g.conn = nil
	g.frames = nil
	g.readErr = nil
	g.done = nil
	g.mu.Unlock()

	if conn == nil {
		return nil
	}
	defer close(done)

	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, message); err != nil {
		g.log.Debug().Err(err).Msg("error sending close frame")
	}

	// The pump observes the peer's close (or the broken pipe) and
	// reports it; do not wait forever on a peer that never answers.
	select {
	case <-readErr:
	case <-time.After(5 * time.Second):
		g.log.Debug().Msg("timed out waiting for peer close")
	}

	return conn.Close()
}

// Reconnect closes the current socket, logging rather than propagating
// close errors, and swaps in a freshly dialed one.
func (g *Gateway) Reconnect() error {
	if err := g.Close(); err != nil {
		g.log.Warn().Err(err).Msg("error closing gateway before reconnect")
	}

	return g.dial()
}

// write serialises one outbound envelope as a single text frame.
// The coarse lock makes writers mutually exclusive.
func (g *Gateway) write(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.conn == nil {
		return ErrNotConnected
	}

	return g.conn.WriteMessage(websocket.TextMessage, data)
}

// Heartbeat sends op 1 with the last seen sequence number, or null when
// none has been seen yet.
func (g *Gateway) Heartbeat(sequence *int64) error {
	return g.write(heartbeatPayload{Op: OpHeartbeat, D: sequence})
}

// Identify sends op 2, starting a fresh session with the connection's
// intents.
func (g *Gateway) Identify(token string) error {
	return g.write(identifyPayload{
		Op: OpIdentify,
		D: identifyData{
			Token: token,
			Properties: identifyProperties{
				OS:      runtime.GOOS,
				Browser: "harmony",
				Device:  "harmony",
			},
			Intents: g.intents,
		},
	})
}

// Resume sends op 6, continuing an interrupted session from its last
// sequence number.
func (g *Gateway) Resume(token, sessionID string, sequence int64) error {
	return g.write(resumePayload{
		Op: OpResume,
		D: resumeData{
			Token:     token,
			SessionID: sessionID,
			Sequence:  sequence,
		},
	})
}

// PresenceUpdate sends op 3. A nil activity advertises the bare status.
func (g *Gateway) PresenceUpdate(status discord.Status, activity *discord.Activity) error {
	activities := []*discord.Activity{}
	if activity != nil {
		activities = append(activities, activity)
	}

	return g.write(presencePayload{
		Op: OpPresenceUpdate,
		D: presenceData{
			Activities: activities,
			Status:     status,
			AFK:        false,
		},
	})
}
