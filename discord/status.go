package discord

// Status is the presence status advertised in a presence update.
type Status string

// Presence statuses understood by the gateway.
const (
	StatusOnline       Status = "online"
	StatusDoNotDisturb Status = "dnd"
	StatusIdle         Status = "idle"
	StatusInvisible    Status = "invisible"
	StatusOffline      Status = "offline"
)
