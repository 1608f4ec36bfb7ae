package harmony

import (
	"github.com/nats-io/nats.go"
	"github.com/nats-io/stan.go"
	"github.com/vmihailenco/msgpack"

	"github.com/harmony-chat/harmony/gateway"
)

// ProducerOptions configures the NATS streaming fan-out.
type ProducerOptions struct {
	Address   string
	ClusterID string
	ClientID  string
	Channel   string
}

// StreamEvent is the envelope published for every dispatch event, so
// downstream consumers get the event name next to the raw payload.
type StreamEvent struct {
	Type string `msgpack:"type"`
	Data []byte `msgpack:"data"`
}

// Producer forwards dispatch events onto a NATS streaming channel.
type Producer struct {
	natsConn *nats.Conn
	stanConn stan.Conn
	channel  string
}

// NewProducer connects to the streaming cluster.
func NewProducer(options ProducerOptions) (*Producer, error) {
	natsConn, err := nats.Connect(options.Address)
	if err != nil {
		return nil, err
	}

	stanConn, err := stan.Connect(options.ClusterID, options.ClientID, stan.NatsConn(natsConn))
	if err != nil {
		natsConn.Close()
		return nil, err
	}

	return &Producer{
		natsConn: natsConn,
		stanConn: stanConn,
		channel:  options.Channel,
	}, nil
}

// Publish sends one dispatch event downstream.
func (p *Producer) Publish(ev *gateway.DispatchEvent) error {
	enc, err := msgpack.Marshal(StreamEvent{
		Type: ev.Type,
		Data: ev.Raw,
	})
	if err != nil {
		return err
	}
	return p.stanConn.Publish(p.channel, enc)
}

// Close tears down the streaming and transport connections.
func (p *Producer) Close() error {
	err := p.stanConn.Close()
	p.natsConn.Close()
	return err
}
