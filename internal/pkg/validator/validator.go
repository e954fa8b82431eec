package validator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/s21platform/chat-feed/internal/model"
)

const (
	MaxMessageLength = 500
	MaxPageSize      = 100
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateSendText(text string) error {
	if strings.TrimSpace(text) == "" {
		return model.ErrEmptyText
	}

	if len([]rune(text)) > MaxMessageLength {
		return fmt.Errorf("%w: limit is %d characters", model.ErrTextTooLong, MaxMessageLength)
	}

	return nil
}

func (v *Validator) ValidateConversationID(conversationID string) error {
	if strings.TrimSpace(conversationID) == "" {
		return fmt.Errorf("conversation id is required")
	}

	if _, err := uuid.Parse(conversationID); err != nil {
		return fmt.Errorf("conversation id '%s' is not a valid uuid", conversationID)
	}

	return nil
}

func (v *Validator) ValidatePageSize(limit int) error {
	if limit <= 0 || limit > MaxPageSize {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxPageSize, limit)
	}

	return nil
}
