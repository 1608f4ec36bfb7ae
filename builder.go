package harmony

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/harmony-chat/harmony/discord"
	"github.com/harmony-chat/harmony/gateway"
	"github.com/harmony-chat/harmony/rest"
)

// Builder assembles a Client from a token, intents and callbacks.
type Builder struct {
	token    string
	intents  gateway.Intents
	handlers Handlers
	state    *State
	producer *Producer
	log      zerolog.Logger
	hasLog   bool
}

// NewBuilder returns an empty builder. A token setter must be called
// before Build.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithBotToken authenticates as a bot account.
func (b *Builder) WithBotToken(token string) *Builder {
	b.token = "Bot " + token
	return b
}

// WithBearerToken authenticates with an OAuth2 bearer token.
func (b *Builder) WithBearerToken(token string) *Builder {
	b.token = "Bearer " + token
	return b
}

// WithIntents sets the event categories the gateway should deliver.
func (b *Builder) WithIntents(intents gateway.Intents) *Builder {
	b.intents = intents
	return b
}

// OnReady registers the readiness callback.
func (b *Builder) OnReady(fn func(*Context, *discord.Ready) error) *Builder {
	b.handlers.OnReady = fn
	return b
}

// OnMessageCreate registers the new-message callback.
func (b *Builder) OnMessageCreate(fn func(*Context, *discord.Message) error) *Builder {
	b.handlers.OnMessageCreate = fn
	return b
}

// OnError registers the sink for errors returned by callbacks. Without
// one, callback errors are logged and dropped.
func (b *Builder) OnError(fn func(error)) *Builder {
	b.handlers.OnError = fn
	return b
}

// WithLogger replaces the default stderr logger.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.log = log
	b.hasLog = true
	return b
}

// WithState mirrors events into a redis world cache.
func (b *Builder) WithState(state *State) *Builder {
	b.state = state
	return b
}

// WithProducer forwards events onto a NATS streaming channel.
func (b *Builder) WithProducer(producer *Producer) *Builder {
	b.producer = producer
	return b
}

// Build creates the Client. The gateway is not dialled until Run.
func (b *Builder) Build() (*Client, error) {
	if b.token == "" {
		return nil, ErrMissingToken
	}

	log := b.log
	if !b.hasLog {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	c := &Client{
		token:    b.token,
		intents:  b.intents,
		handlers: b.handlers,
		rest:     rest.NewClient(b.token, log),
		state:    b.state,
		producer: b.producer,
		log:      log,
		stop:     make(chan struct{}),
	}
	c.connect = func() (Connection, error) {
		return gateway.Connect(c.intents, c.log)
	}
	return c, nil
}
