package rest

// CreateMessage is the option bag for posting a message. Unset fields
// are not serialised.
type CreateMessage struct {
	Content string         `json:"content,omitempty"`
	TTS     bool           `json:"tts,omitempty"`
	Embeds  []*CreateEmbed `json:"embeds,omitempty"`
}

// NewCreateMessage returns an empty message body.
func NewCreateMessage() *CreateMessage {
	return &CreateMessage{}
}

// SetContent sets the text content.
func (m *CreateMessage) SetContent(content string) *CreateMessage {
	m.Content = content
	return m
}

// SetTTS marks the message as text-to-speech.
func (m *CreateMessage) SetTTS(tts bool) *CreateMessage {
	m.TTS = tts
	return m
}

// AddEmbed appends a rich embed.
func (m *CreateMessage) AddEmbed(embed *CreateEmbed) *CreateMessage {
	m.Embeds = append(m.Embeds, embed)
	return m
}
