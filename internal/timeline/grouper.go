// Package timeline turns a flat message list into sender groups and sized rows
// for a windowed renderer.
package timeline

import (
	"time"

	"github.com/s21platform/chat-feed/internal/model"
)

// MaxGroupGap is the largest distance between a message and the latest
// message of its group.
const MaxGroupGap = 2 * time.Minute

// Group batches consecutive messages of one sender. A new group starts when
// the sender changes or the message is more than MaxGroupGap after the
// group's latest message. messages must be in ascending time order.
func Group(messages []model.Message, selfID string) []model.Group {
	groups := make([]model.Group, 0)

	var current *model.Group
	for _, msg := range messages {
		if current == nil ||
			current.SenderID != msg.SenderID ||
			msg.CreatedAt.Sub(current.LatestTimestamp) > MaxGroupGap {
			groups = append(groups, model.Group{
				ID:             msg.Key(),
				SenderID:       msg.SenderID,
				StartTimestamp: msg.CreatedAt,
				IsOwnSender:    msg.SenderID == selfID,
			})
			current = &groups[len(groups)-1]
		}

		current.Messages = append(current.Messages, msg)
		if msg.CreatedAt.After(current.LatestTimestamp) {
			current.LatestTimestamp = msg.CreatedAt
		}
	}

	return groups
}
