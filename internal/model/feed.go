package model

import "time"

type SendState int

const (
	Composing SendState = iota
	Sending
	Confirmed
	Failed
)

func (s SendState) String() string {
	switch s {
	case Composing:
		return "composing"
	case Sending:
		return "sending"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// PendingSend is an optimistic outgoing message and its lifecycle state.
type PendingSend struct {
	Key     string
	Message Message
	State   SendState
}

// Cursor tracks backward pagination. A zero OldestLoaded means nothing is loaded yet.
type Cursor struct {
	OldestLoaded time.Time `json:"oldest_loaded"`
	OldestID     string    `json:"oldest_id,omitempty"`
	HasMore      bool      `json:"has_more"`
}

type Connectivity string

const (
	ConnectivityConnecting Connectivity = "connecting"
	ConnectivityLive       Connectivity = "live"
	ConnectivityDegraded   Connectivity = "degraded"
	ConnectivityClosed     Connectivity = "closed"
)

// Snapshot is a consistent copy of a feed's state.
type Snapshot struct {
	ConversationID string       `json:"conversation_id"`
	Messages       []Message    `json:"messages"`
	Cursor         Cursor       `json:"cursor"`
	Loading        bool         `json:"loading"`
	PendingState   SendState    `json:"-"`
	Connectivity   Connectivity `json:"connectivity"`
}

// Group is a run of consecutive messages from one sender, never more than
// two minutes apart. Groups are derived and never persisted.
type Group struct {
	ID              string    `json:"id"`
	SenderID        string    `json:"sender_id"`
	Messages        []Message `json:"messages"`
	StartTimestamp  time.Time `json:"start_timestamp"`
	LatestTimestamp time.Time `json:"latest_timestamp"`
	IsOwnSender     bool      `json:"is_own_sender"`
}

// Row is a group sized for a windowed list.
type Row struct {
	Group       Group `json:"group"`
	DateDivider bool  `json:"date_divider"`
	Height      int   `json:"height"`
}

// Draft is unsent compose-box text of one conversation.
type Draft struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

// User is the local participant on whose behalf the feed sends.
type User struct {
	ID          string
	DisplayName string
	AvatarRef   string
}
