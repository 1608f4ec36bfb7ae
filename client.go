package harmony

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harmony-chat/harmony/gateway"
	"github.com/harmony-chat/harmony/rest"
)

// reconnectDelay is slept between supervised session restarts.
const reconnectDelay = 5 * time.Second

// Client is the top-level supervisor. Run keeps a session alive
// indefinitely: connect, drive the two workers, and on any failure tear
// down, wait, and start over.
type Client struct {
	token    string
	intents  gateway.Intents
	handlers Handlers
	rest     *rest.Client
	state    *State
	producer *Producer
	log      zerolog.Logger

	connect func() (Connection, error)

	mu      sync.Mutex
	session *GatewayHandler

	stop     chan struct{}
	stopOnce sync.Once
}

// Rest is the rate-limited REST client, usable outside callbacks.
func (c *Client) Rest() *rest.Client {
	return c.rest
}

// Run supervises sessions until Stop is called. Session errors are
// logged and followed by a fresh connection after reconnectDelay.
func (c *Client) Run() error {
	if c.token == "" {
		return ErrMissingToken
	}

	for {
		select {
		case <-c.stop:
			return nil
		default:
		}

		if err := c.runSession(); err != nil {
			c.log.Error().Err(err).Msg("session failed, restarting")
		}

		select {
		case <-c.stop:
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

// runSession drives one connection to completion. The gateway worker's
// error ends the session; the dispatch worker drains the queue before
// the session is declared over.
func (c *Client) runSession() error {
	conn, err := c.connect()
	if err != nil {
		return err
	}

	queue := newEventQueue()
	handler := NewGatewayHandler(conn, c.token, queue, c.log)
	events := NewEventHandler(queue, c.handlers, c.rest, conn, c.state, c.producer, c.log)

	c.mu.Lock()
	c.session = handler
	c.mu.Unlock()

	// Stop must be able to interrupt a session already in flight.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-c.stop:
			handler.Stop()
		case <-done:
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		events.Run()
	}()

	runErr := handler.Run()

	queue.Close()
	wg.Wait()

	if err := conn.Close(); err != nil {
		c.log.Debug().Err(err).Msg("closing gateway connection")
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	return runErr
}

// Stop makes Run return after the current session winds down.
func (c *Client) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// HeartbeatLatency is the most recent heartbeat round trip, or zero
// when no session is live.
func (c *Client) HeartbeatLatency() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return 0
	}
	return c.session.HeartbeatLatency()
}
