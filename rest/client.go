// Package rest is the typed facade over the HTTPS surface. Every
// request is classified into an optional rate-limit Route and executed
// through the shared RateLimiter, so concurrent callers on the same
// bucket serialise and server cooldowns are always respected.
package rest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/harmony-chat/harmony/discord"
)

// HTTPError is any REST status outside 2xx, except 429 which the
// RateLimiter consumes internally.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("rest: status %d: %s", e.Status, e.Body)
}

// File is one attachment for SendFiles.
type File struct {
	Name   string
	Reader io.Reader
}

// Client issues typed REST requests on behalf of one token.
type Client struct {
	// BaseURL is the versioned API root. Overridable for tests.
	BaseURL string

	httpClient *http.Client
	token      string
	userAgent  string
	limiter    *RateLimiter
	log        zerolog.Logger
}

// NewClient creates a REST client. The token must already carry its
// "Bot " or "Bearer " prefix; it is sent verbatim as Authorization.
func NewClient(token string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    fmt.Sprintf("%s/v%d", discord.APIURL, discord.APIVersion),
		httpClient: &http.Client{Timeout: 20 * time.Second},
		token:      token,
		userAgent:  "DiscordBot (https://github.com/harmony-chat/harmony, v" + discord.Version + ")",
		limiter:    NewRateLimiter(log),
		log:        log,
	}
}

// request runs one REST round-trip through the rate limiter and returns
// the response body. Non-2xx statuses come back as *HTTPError.
func (c *Client) request(method, path string, route *Route, body []byte, contentType string) ([]byte, error) {
	attempt := func() (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequest(method, c.BaseURL+path, reader)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", c.token)
		req.Header.Set("User-Agent", c.userAgent)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		return c.httpClient.Do(req)
	}

	resp, err := c.limiter.Do(route, attempt)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: data}
	}

	return data, nil
}

func (c *Client) getJSON(path string, route *Route, v interface{}) error {
	data, err := c.request(http.MethodGet, path, route, nil, "")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// isNotFound reports whether err is a 404, which some lookups map to an
// absent value rather than a failure.
func isNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}

// GetChannel fetches a channel; a 404 yields nil, nil.
func (c *Client) GetChannel(channelID discord.ChannelID) (*discord.Channel, error) {
	channel := &discord.Channel{}
	err := c.getJSON(fmt.Sprintf("/channels/%s", channelID), nil, channel)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return channel, nil
}

// CreateMessage posts a message to a channel.
func (c *Client) CreateMessage(channelID discord.ChannelID, message *CreateMessage) (*discord.Message, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}

	data, err := c.request(
		http.MethodPost,
		fmt.Sprintf("/channels/%s/messages", channelID),
		optional(ChannelRoute(channelID)),
		body,
		"application/json",
	)
	if err != nil {
		return nil, err
	}

	created := &discord.Message{}
	if err := json.Unmarshal(data, created); err != nil {
		return nil, err
	}
	return created, nil
}

// SendFiles posts a message with file attachments. The non-file payload
// travels in the payload_json form part.
func (c *Client) SendFiles(channelID discord.ChannelID, files []File, message *CreateMessage) (*discord.Message, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, file := range files {
		part, err := writer.CreateFormFile(fmt.Sprintf("files[%d]", i), file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("payload_json", string(payload)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	data, err := c.request(
		http.MethodPost,
		fmt.Sprintf("/channels/%s/messages", channelID),
		optional(ChannelRoute(channelID)),
		buf.Bytes(),
		writer.FormDataContentType(),
	)
	if err != nil {
		return nil, err
	}

	created := &discord.Message{}
	if err := json.Unmarshal(data, created); err != nil {
		return nil, err
	}
	return created, nil
}

// EditMessage patches a previously sent message.
func (c *Client) EditMessage(channelID discord.ChannelID, messageID discord.MessageID, edit *EditMessage) (*discord.Message, error) {
	body, err := json.Marshal(edit)
	if err != nil {
		return nil, err
	}

	data, err := c.request(
		http.MethodPatch,
		fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID),
		optional(ChannelMessageRoute(channelID, messageID)),
		body,
		"application/json",
	)
	if err != nil {
		return nil, err
	}

	edited := &discord.Message{}
	if err := json.Unmarshal(data, edited); err != nil {
		return nil, err
	}
	return edited, nil
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(channelID discord.ChannelID, messageID discord.MessageID) error {
	_, err := c.request(
		http.MethodDelete,
		fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID),
		optional(ChannelMessageRoute(channelID, messageID)),
		nil,
		"",
	)
	return err
}

// GetGuildChannels lists the channels of a guild.
func (c *Client) GetGuildChannels(guildID discord.GuildID) ([]discord.Channel, error) {
	var channels []discord.Channel
	err := c.getJSON(
		fmt.Sprintf("/guilds/%s/channels", guildID),
		optional(GuildRoute(guildID)),
		&channels,
	)
	return channels, err
}

// GetGuildMember fetches one member; a 404 yields nil, nil.
func (c *Client) GetGuildMember(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	member := &discord.Member{}
	err := c.getJSON(
		fmt.Sprintf("/guilds/%s/members/%s", guildID, userID),
		optional(GuildRoute(guildID)),
		member,
	)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ListGuildMembers lists up to 1000 members of a guild.
func (c *Client) ListGuildMembers(guildID discord.GuildID) ([]discord.Member, error) {
	var members []discord.Member
	err := c.getJSON(
		fmt.Sprintf("/guilds/%s/members?limit=1000", guildID),
		optional(GuildRoute(guildID)),
		&members,
	)
	return members, err
}

// SearchGuildMembers lists members whose name starts with query.
func (c *Client) SearchGuildMembers(guildID discord.GuildID, query string) ([]discord.Member, error) {
	var members []discord.Member
	err := c.getJSON(
		fmt.Sprintf("/guilds/%s/members/search?query=%s&limit=1000", guildID, url.QueryEscape(query)),
		optional(GuildRoute(guildID)),
		&members,
	)
	return members, err
}

// AddGuildMemberRole grants a role to a member.
func (c *Client) AddGuildMemberRole(guildID discord.GuildID, userID discord.UserID, roleID discord.RoleID) error {
	_, err := c.request(
		http.MethodPut,
		fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID),
		optional(GuildMemberRoute(guildID, userID)),
		nil,
		"",
	)
	return err
}

// RemoveGuildMemberRole revokes a role from a member.
func (c *Client) RemoveGuildMemberRole(guildID discord.GuildID, userID discord.UserID, roleID discord.RoleID) error {
	_, err := c.request(
		http.MethodDelete,
		fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID),
		optional(GuildMemberRoute(guildID, userID)),
		nil,
		"",
	)
	return err
}

// GetGuildRoles lists the roles of a guild.
func (c *Client) GetGuildRoles(guildID discord.GuildID) ([]discord.Role, error) {
	var roles []discord.Role
	err := c.getJSON(fmt.Sprintf("/guilds/%s/roles", guildID), nil, &roles)
	return roles, err
}

// CreateGuildRole creates a role in a guild.
func (c *Client) CreateGuildRole(guildID discord.GuildID, role *CreateGuildRole) (*discord.Role, error) {
	body, err := json.Marshal(role)
	if err != nil {
		return nil, err
	}

	data, err := c.request(
		http.MethodPost,
		fmt.Sprintf("/guilds/%s/roles", guildID),
		optional(GuildRoute(guildID)),
		body,
		"application/json",
	)
	if err != nil {
		return nil, err
	}

	created := &discord.Role{}
	if err := json.Unmarshal(data, created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteGuildRole removes a role from a guild.
func (c *Client) DeleteGuildRole(guildID discord.GuildID, roleID discord.RoleID) error {
	_, err := c.request(
		http.MethodDelete,
		fmt.Sprintf("/guilds/%s/roles/%s", guildID, roleID),
		nil,
		nil,
		"",
	)
	return err
}

// CreateDM opens (or reuses) the DM channel with a user.
func (c *Client) CreateDM(userID discord.UserID) (*discord.Channel, error) {
	body, err := json.Marshal(struct {
		RecipientID discord.UserID `json:"recipient_id"`
	}{RecipientID: userID})
	if err != nil {
		return nil, err
	}

	data, err := c.request(http.MethodPost, "/users/@me/channels", nil, body, "application/json")
	if err != nil {
		return nil, err
	}

	channel := &discord.Channel{}
	if err := json.Unmarshal(data, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// ExecuteWebhook posts through a webhook. With wait true the created
// message is returned; with wait false the server replies immediately
// and the result is nil.
func (c *Client) ExecuteWebhook(webhookID discord.WebhookID, webhookToken string, wait bool, execute *ExecuteWebhook) (*discord.Message, error) {
	body, err := json.Marshal(execute)
	if err != nil {
		return nil, err
	}

	data, err := c.request(
		http.MethodPost,
		fmt.Sprintf("/webhooks/%s/%s?wait=%t", webhookID, webhookToken, wait),
		optional(WebhookRoute(webhookID)),
		body,
		"application/json",
	)
	if err != nil {
		return nil, err
	}

	if !wait {
		return nil, nil
	}

	message := &discord.Message{}
	if err := json.Unmarshal(data, message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteWebhookMessage removes a message previously sent by a webhook.
func (c *Client) DeleteWebhookMessage(webhookID discord.WebhookID, webhookToken string, messageID discord.MessageID) error {
	_, err := c.request(
		http.MethodDelete,
		fmt.Sprintf("/webhooks/%s/%s/messages/%s", webhookID, webhookToken, messageID),
		optional(WebhookRoute(webhookID)),
		nil,
		"",
	)
	return err
}
