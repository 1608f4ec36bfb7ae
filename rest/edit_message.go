package rest

// EditMessage is the option bag for editing a message. A nil field
// leaves the server-side value untouched.
type EditMessage struct {
	Content *string        `json:"content,omitempty"`
	Embeds  []*CreateEmbed `json:"embeds,omitempty"`
	Flags   *uint64        `json:"flags,omitempty"`
}

// NewEditMessage returns an empty edit.
func NewEditMessage() *EditMessage {
	return &EditMessage{}
}

// SetContent replaces the text content.
func (m *EditMessage) SetContent(content string) *EditMessage {
	m.Content = &content
	return m
}

// AddEmbed appends a rich embed.
func (m *EditMessage) AddEmbed(embed *CreateEmbed) *EditMessage {
	m.Embeds = append(m.Embeds, embed)
	return m
}

// SetFlags replaces the message flags.
func (m *EditMessage) SetFlags(flags uint64) *EditMessage {
	m.Flags = &flags
	return m
}
