package discord

// User is a single account on the platform.
type User struct {
	ID            UserID  `json:"id" msgpack:"id"`
	Username      string  `json:"username" msgpack:"username"`
	Discriminator string  `json:"discriminator" msgpack:"discriminator"`
	Avatar        *string `json:"avatar" msgpack:"avatar"`
	Bot           bool    `json:"bot,omitempty" msgpack:"bot,omitempty"`
	PublicFlags   uint64  `json:"public_flags,omitempty" msgpack:"public_flags,omitempty"`
}

// Mention renders the user-mention token for this user.
func (u *User) Mention() string {
	return u.ID.Mention()
}
