package discord

// Role is a guild role.
type Role struct {
	ID          RoleID `json:"id" msgpack:"id"`
	Name        string `json:"name" msgpack:"name"`
	Color       uint32 `json:"color" msgpack:"color"`
	Hoist       bool   `json:"hoist" msgpack:"hoist"`
	Position    int    `json:"position" msgpack:"position"`
	Permissions string `json:"permissions" msgpack:"permissions"`
	Managed     bool   `json:"managed" msgpack:"managed"`
	Mentionable bool   `json:"mentionable" msgpack:"mentionable"`
}

// Mention renders the role-mention token for this role.
func (r *Role) Mention() string {
	return r.ID.Mention()
}
