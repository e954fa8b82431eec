package postgres

import (
	"context"

	"github.com/s21platform/chat-feed/internal/model"
)

// Publisher fans a stored message out to realtime subscribers.
type Publisher interface {
	Publish(ctx context.Context, channel string, msg model.StreamMessage) error
}
