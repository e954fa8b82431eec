package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TextMessageType = "text"

	// OptimisticKeyPrefix prefixes the temporary key of an unconfirmed message.
	OptimisticKeyPrefix = "optimistic-"
)

type StreamMessageList []StreamMessage

// Message is a chat message as the feed sees it. ID is empty only while the
// message is an optimistic entry waiting for the server copy.
type Message struct {
	ID                string    `json:"id,omitempty"`
	ConversationID    string    `json:"conversation_id"`
	SenderID          string    `json:"sender_id"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"created_at"`
	SenderDisplayName string    `json:"sender_display_name"`
	SenderAvatarRef   string    `json:"sender_avatar_ref,omitempty"`
	ClientKey         string    `json:"client_key,omitempty"`
}

// Confirmed reports whether the message carries a server-assigned id.
func (m Message) Confirmed() bool {
	return m.ID != ""
}

// Key identifies the message inside a feed: the server id once confirmed,
// the optimistic key before that.
func (m Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.ClientKey
}

// StreamMessage is the row/wire shape used by the chat-service: postgres rows,
// Centrifugo publications and NATS payloads all carry it.
type StreamMessage struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	StreamID       uuid.UUID  `db:"stream_id" json:"stream_id"`
	SenderID       uuid.UUID  `db:"sender_id" json:"sender_id"`
	Type           string     `db:"type" json:"type"`
	Content        string     `db:"content" json:"content"`
	SentAt         time.Time  `db:"sent_at" json:"sent_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	SenderNickname *string    `db:"sender_nickname" json:"sender_nickname,omitempty"`
	SenderAvatar   *string    `db:"sender_avatar" json:"sender_avatar,omitempty"`
}

func (s StreamMessage) ToMessage() Message {
	msg := Message{
		ID:             s.ID.String(),
		ConversationID: s.StreamID.String(),
		SenderID:       s.SenderID.String(),
		Text:           s.Content,
		CreatedAt:      s.SentAt,
	}
	if s.SenderNickname != nil {
		msg.SenderDisplayName = *s.SenderNickname
	}
	if s.SenderAvatar != nil {
		msg.SenderAvatarRef = *s.SenderAvatar
	}
	return msg
}

// ListParams selects one page of history. Before is exclusive; nil asks for the newest page.
// BeforeID breaks ties at Before: rows sent exactly at Before are returned only
// when their id sorts below BeforeID. Stores without a keyset may ignore it.
type ListParams struct {
	ConversationID string
	Before         *time.Time
	BeforeID       string
	Limit          int
}

// Page is one gateway response. NextCursor is set only when older messages exist.
type Page struct {
	Messages   []Message
	NextCursor *time.Time
}
