package rest

import "time"

// EmbedFooter is the footer block of an embed.
type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedImage is an image or thumbnail block of an embed.
type EmbedImage struct {
	URL string `json:"url"`
}

// EmbedAuthor is the author block of an embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedField is a single name/value pair of an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// CreateEmbed is the rich-embed option bag attached to messages and
// webhook executions. Unset fields are not serialised.
type CreateEmbed struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Timestamp   *time.Time    `json:"timestamp,omitempty"`
	Color       uint32        `json:"color,omitempty"`
	Footer      *EmbedFooter  `json:"footer,omitempty"`
	Image       *EmbedImage   `json:"image,omitempty"`
	Thumbnail   *EmbedImage   `json:"thumbnail,omitempty"`
	Author      *EmbedAuthor  `json:"author,omitempty"`
	Fields      []*EmbedField `json:"fields,omitempty"`
}

// NewCreateEmbed returns an empty embed.
func NewCreateEmbed() *CreateEmbed {
	return &CreateEmbed{}
}

// SetTitle sets the embed title.
func (e *CreateEmbed) SetTitle(title string) *CreateEmbed {
	e.Title = title
	return e
}

// SetDescription sets the embed description.
func (e *CreateEmbed) SetDescription(description string) *CreateEmbed {
	e.Description = description
	return e
}

// SetURL sets the URL the title links to.
func (e *CreateEmbed) SetURL(url string) *CreateEmbed {
	e.URL = url
	return e
}

// SetTimestamp sets the embed timestamp.
func (e *CreateEmbed) SetTimestamp(t time.Time) *CreateEmbed {
	e.Timestamp = &t
	return e
}

// SetColor sets the accent color as an RGB value.
func (e *CreateEmbed) SetColor(color uint32) *CreateEmbed {
	e.Color = color
	return e
}

// SetFooter sets the footer text and optional icon.
func (e *CreateEmbed) SetFooter(text, iconURL string) *CreateEmbed {
	e.Footer = &EmbedFooter{Text: text, IconURL: iconURL}
	return e
}

// SetImage sets the large image.
func (e *CreateEmbed) SetImage(url string) *CreateEmbed {
	e.Image = &EmbedImage{URL: url}
	return e
}

// SetThumbnail sets the thumbnail image.
func (e *CreateEmbed) SetThumbnail(url string) *CreateEmbed {
	e.Thumbnail = &EmbedImage{URL: url}
	return e
}

// SetAuthor sets the author block.
func (e *CreateEmbed) SetAuthor(name, url, iconURL string) *CreateEmbed {
	e.Author = &EmbedAuthor{Name: name, URL: url, IconURL: iconURL}
	return e
}

// AddField appends one name/value field.
func (e *CreateEmbed) AddField(name, value string, inline bool) *CreateEmbed {
	e.Fields = append(e.Fields, &EmbedField{Name: name, Value: value, Inline: inline})
	return e
}
