package gateway

// Intents is the bitmask of event categories a session opts into. It is
// sent once, in Identify.
type Intents uint64

// Intent bits.
const (
	IntentGuilds Intents = 1 << iota
	IntentGuildMembers
	IntentGuildBans
	IntentGuildEmojis
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
	IntentGuildMessages
	IntentGuildMessageReactions
	IntentGuildMessageTyping
	IntentDirectMessages
	IntentDirectMessageReactions
	IntentDirectMessageTyping
)

// Has reports whether every bit of other is set.
func (i Intents) Has(other Intents) bool {
	return i&other == other
}
