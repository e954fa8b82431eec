// Package chatapi talks to the chat-service REST API.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

type Client struct {
	baseURL    string
	token      string
	self       model.User
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.ChatAPI.BaseURL,
		token:   cfg.ChatAPI.Token,
		self: model.User{
			ID:          cfg.Feed.UserID,
			DisplayName: cfg.Feed.UserDisplayName,
			AvatarRef:   cfg.Feed.UserAvatarRef,
		},
		httpClient: &http.Client{
			Timeout: cfg.ChatAPI.Timeout,
		},
	}
}

func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

type message struct {
	UUID           string  `json:"uuid"`
	SenderUUID     string  `json:"sender_uuid,omitempty"`
	SenderNickname *string `json:"sender_nickname,omitempty"`
	SenderAvatar   *string `json:"sender_avatar,omitempty"`
	Content        string  `json:"content"`
	SentAt         string  `json:"sent_at"`
	UpdatedAt      *string `json:"updated_at,omitempty"`
}

type listResponse struct {
	Messages []message `json:"messages"`
}

type sendRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	SentAt    string `json:"sent_at"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Channel   string `json:"channel,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// List returns up to params.Limit messages of the stream, newest first. The
// service treats the offset as an inclusive sent_at bound, so the boundary
// message comes back again on the next page.
func (c *Client) List(ctx context.Context, params model.ListParams) (*model.Page, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Before != nil {
		query.Set("offset", params.Before.UTC().Format(time.RFC3339Nano))
	}

	path := "/api/chat/streams/" + url.PathEscape(params.ConversationID) + "/messages"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	page := &model.Page{Messages: make([]model.Message, 0, len(resp.Messages))}
	for _, m := range resp.Messages {
		sentAt, err := time.Parse(time.RFC3339Nano, m.SentAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sent_at of message %s: %w", m.UUID, err)
		}

		msg := model.Message{
			ID:             m.UUID,
			ConversationID: params.ConversationID,
			SenderID:       m.SenderUUID,
			Text:           m.Content,
			CreatedAt:      sentAt,
		}
		if m.SenderNickname != nil {
			msg.SenderDisplayName = *m.SenderNickname
		}
		if m.SenderAvatar != nil {
			msg.SenderAvatarRef = *m.SenderAvatar
		}
		page.Messages = append(page.Messages, msg)
	}

	return page, nil
}

// Send posts a text message as the configured user.
func (c *Client) Send(ctx context.Context, conversationID, text string) (*model.Message, error) {
	req := sendRequest{
		Content:     text,
		MessageType: model.TextMessageType,
	}

	var resp sendResponse
	path := "/api/chat/streams/" + url.PathEscape(conversationID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}

	sentAt, err := time.Parse(time.RFC3339Nano, resp.SentAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sent_at: %w", err)
	}

	return &model.Message{
		ID:                resp.MessageID,
		ConversationID:    conversationID,
		SenderID:          c.self.ID,
		Text:              text,
		CreatedAt:         sentAt,
		SenderDisplayName: c.self.DisplayName,
		SenderAvatarRef:   c.self.AvatarRef,
	}, nil
}

// ConnectToken fetches a Centrifugo connection token.
func (c *Client) ConnectToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/centrifugo/connect-token", nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// SubscribeToken fetches a token for the channel of a stream.
func (c *Client) SubscribeToken(ctx context.Context, channel string) (string, error) {
	var resp tokenResponse
	path := "/api/chat/streams/" + url.PathEscape(channel) + "/subscribe-token"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // .

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
