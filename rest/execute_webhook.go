package rest

// ExecuteWebhook is the option bag for executing a webhook. Username
// and avatar override the webhook's defaults for this one message.
type ExecuteWebhook struct {
	Content   string         `json:"content,omitempty"`
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	TTS       bool           `json:"tts,omitempty"`
	Embeds    []*CreateEmbed `json:"embeds,omitempty"`
}

// NewExecuteWebhook returns an empty webhook execution body.
func NewExecuteWebhook() *ExecuteWebhook {
	return &ExecuteWebhook{}
}

// SetContent sets the text content.
func (w *ExecuteWebhook) SetContent(content string) *ExecuteWebhook {
	w.Content = content
	return w
}

// SetUsername overrides the webhook's display name.
func (w *ExecuteWebhook) SetUsername(username string) *ExecuteWebhook {
	w.Username = username
	return w
}

// SetAvatarURL overrides the webhook's avatar.
func (w *ExecuteWebhook) SetAvatarURL(url string) *ExecuteWebhook {
	w.AvatarURL = url
	return w
}

// SetTTS marks the message as text-to-speech.
func (w *ExecuteWebhook) SetTTS(tts bool) *ExecuteWebhook {
	w.TTS = tts
	return w
}

// AddEmbed appends a rich embed.
func (w *ExecuteWebhook) AddEmbed(embed *CreateEmbed) *ExecuteWebhook {
	w.Embeds = append(w.Embeds, embed)
	return w
}
