package rest

// CreateGuildRole is the option bag for creating a role.
type CreateGuildRole struct {
	Name        string `json:"name,omitempty"`
	Permissions string `json:"permissions,omitempty"`
	Color       uint32 `json:"color,omitempty"`
	Hoist       bool   `json:"hoist,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty"`
}

// NewCreateGuildRole returns an empty role body; the server fills in
// its defaults for anything unset.
func NewCreateGuildRole() *CreateGuildRole {
	return &CreateGuildRole{}
}

// SetName sets the role name.
func (r *CreateGuildRole) SetName(name string) *CreateGuildRole {
	r.Name = name
	return r
}

// SetPermissions sets the permission bit set, as the decimal string the
// API expects.
func (r *CreateGuildRole) SetPermissions(permissions string) *CreateGuildRole {
	r.Permissions = permissions
	return r
}

// SetColor sets the RGB color value.
func (r *CreateGuildRole) SetColor(color uint32) *CreateGuildRole {
	r.Color = color
	return r
}

// SetHoist displays the role separately in the member list.
func (r *CreateGuildRole) SetHoist(hoist bool) *CreateGuildRole {
	r.Hoist = hoist
	return r
}

// SetMentionable allows anyone to mention the role.
func (r *CreateGuildRole) SetMentionable(mentionable bool) *CreateGuildRole {
	r.Mentionable = mentionable
	return r
}
