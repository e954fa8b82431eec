// Package draft persists unsent compose-box text per conversation.
package draft

import (
	"context"
	"fmt"
	"strings"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
)

const keyPrefix = "draft_"

// Store is best-effort: backend failures are logged and never returned.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func Key(conversationID string) string {
	return keyPrefix + conversationID
}

// Save writes text for the conversation. Blank text removes the draft.
func (s *Store) Save(ctx context.Context, conversationID, text string) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Save")

	if strings.TrimSpace(text) == "" {
		s.Clear(ctx, conversationID)
		return
	}

	if err := s.kv.Set(Key(conversationID), text); err != nil {
		logger.Warn(fmt.Sprintf("failed to save draft for conversation %s: %v", conversationID, err))
	}
}

func (s *Store) Load(ctx context.Context, conversationID string) string {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Load")

	text, ok, err := s.kv.Get(Key(conversationID))
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to load draft for conversation %s: %v", conversationID, err))
		return ""
	}
	if !ok {
		return ""
	}
	return text
}

func (s *Store) Clear(ctx context.Context, conversationID string) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Clear")

	if err := s.kv.Delete(Key(conversationID)); err != nil {
		logger.Warn(fmt.Sprintf("failed to clear draft for conversation %s: %v", conversationID, err))
	}
}
