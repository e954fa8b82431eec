package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText      = errors.New("message text is empty")
	ErrTextTooLong    = errors.New("message text exceeds maximum length")
	ErrAlreadySending = errors.New("a message is already being sent in this conversation")
	ErrFeedClosed     = errors.New("feed is closed")
	ErrNoConversation = errors.New("no active conversation")
)

// TransportError is a failed gateway call. For sends RestoreText holds the
// text the compose box should get back.
type TransportError struct {
	Op          string
	RestoreText string
	Err         error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SubscriptionError means the realtime channel could not be set up; the feed
// keeps working in pull-only mode.
type SubscriptionError struct {
	ConversationID string
	Err            error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("failed to subscribe to conversation %s: %v", e.ConversationID, e.Err)
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrTextTooLong)
}

func IsConcurrency(err error) bool {
	return errors.Is(err, ErrAlreadySending)
}
