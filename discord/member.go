package discord

import "time"

// Member is a user's membership of a single guild. The user field is
// absent in some gateway payloads where the surrounding object already
// names the user.
type Member struct {
	User         *User      `json:"user,omitempty" msgpack:"user,omitempty"`
	Nick         *string    `json:"nick" msgpack:"nick"`
	Avatar       *string    `json:"avatar,omitempty" msgpack:"avatar,omitempty"`
	Roles        []RoleID   `json:"roles" msgpack:"roles"`
	JoinedAt     time.Time  `json:"joined_at" msgpack:"joined_at"`
	PremiumSince *time.Time `json:"premium_since,omitempty" msgpack:"premium_since,omitempty"`
	Deaf         bool       `json:"deaf" msgpack:"deaf"`
	Mute         bool       `json:"mute" msgpack:"mute"`
	Pending      bool       `json:"pending,omitempty" msgpack:"pending,omitempty"`
	Permissions  *string    `json:"permissions,omitempty" msgpack:"permissions,omitempty"`
}

// DisplayName returns the nickname when one is set, the username
// otherwise.
func (m *Member) DisplayName() string {
	if m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	if m.User != nil {
		return m.User.Username
	}
	return ""
}
