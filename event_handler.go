package harmony

import (
	"github.com/rs/zerolog"

	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/gateway"
	"github.com/harmony-chat/harmony/rest"
)

// Handlers are the embedder's callbacks. Unset callbacks are skipped.
// Errors a callback returns go to OnError and never stop dispatch.
type Handlers struct {
	OnReady         func(*Context, *discord.Ready) error
	OnMessageCreate func(*Context, *discord.Message) error
	OnError         func(error)
}

// EventHandler consumes the event queue and invokes callbacks one
// event at a time, so the embedder observes events in server order.
type EventHandler struct {
	queue    *eventQueue
	handlers Handlers
	restC    *rest.Client
	conn     Connection
	state    *State
	producer *Producer
	log      zerolog.Logger
}

// NewEventHandler wires the dispatch loop. state and producer may be
// nil; they receive every event before the user callback runs.
func NewEventHandler(queue *eventQueue, handlers Handlers, restClient *rest.Client, conn Connection, state *State, producer *Producer, log zerolog.Logger) *EventHandler {
	return &EventHandler{
		queue:    queue,
		handlers: handlers,
		restC:    restClient,
		conn:     conn,
		state:    state,
		producer: producer,
		log:      log,
	}
}

// Run blocks on the queue until it is closed and drained.
func (h *EventHandler) Run() {
	for {
		ev, ok := h.queue.Pop()
		if !ok {
			return
		}
		h.dispatch(ev)
	}
}

func (h *EventHandler) dispatch(ev *gateway.DispatchEvent) {
	h.fanOut(ev)

	ctx := &Context{Client: h.restC, conn: h.conn}

	var err error
	switch {
	case ev.Ready != nil:
		if h.handlers.OnReady != nil {
			err = h.handlers.OnReady(ctx, ev.Ready)
		}
	case ev.Message != nil:
		if h.handlers.OnMessageCreate != nil {
			err = h.handlers.OnMessageCreate(ctx, ev.Message)
		}
	default:
		h.log.Debug().Str("type", ev.Type).Msg("no handler for dispatch event")
	}

	if err != nil {
		if h.handlers.OnError != nil {
			h.handlers.OnError(err)
		} else {
			h.log.Error().Err(err).Str("type", ev.Type).Msg("callback failed")
		}
	}
}

// fanOut mirrors the event into the optional side channels before the
// callback observes it.
func (h *EventHandler) fanOut(ev *gateway.DispatchEvent) {
	if h.state != nil {
		if err := h.state.Apply(ev); err != nil {
			h.log.Warn().Err(err).Str("type", ev.Type).Msg("state update failed")
		}
	}
	if h.producer != nil {
		if err := h.producer.Publish(ev); err != nil {
			h.log.Warn().Err(err).Str("type", ev.Type).Msg("stream publish failed")
		}
	}
}
