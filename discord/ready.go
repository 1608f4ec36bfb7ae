package discord

// Ready is the payload of the READY dispatch, sent once per successful
// identify. SessionID is what a later Resume presents to the server.
type Ready struct {
	Version   int      `json:"v" msgpack:"v"`
	User      User     `json:"user" msgpack:"user"`
	SessionID string   `json:"session_id" msgpack:"session_id"`
	Shard     *[2]int  `json:"shard,omitempty" msgpack:"shard,omitempty"`
}
