package feed

import (
	"context"
	"time"

	"github.com/golang/mock/gomock"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
	"github.com/s21platform/chat-feed/internal/pkg/validator"
)

const (
	testConversationID = "5f0c2a56-8a4e-4c59-9f7e-1f0f5d2f6b11"
	otherConversation  = "0b6f1d7e-3c1a-4f8e-9a57-2d6c4e8b9a02"
	selfID             = "self-user"
	friendID           = "friend-user"
)

var baseTime = time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)

var self = model.User{ID: selfID, DisplayName: "Me"}

func createTestContext(ctrl *gomock.Controller) context.Context {
	mockLogger := logger_lib.NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().AddFuncName(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	return context.WithValue(context.Background(), config.KeyLogger, mockLogger)
}

func message(id, senderID, text string, offset time.Duration) model.Message {
	return model.Message{
		ID:             id,
		ConversationID: testConversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      baseTime.Add(offset),
	}
}

// newestFirst builds n confirmed messages one minute apart, newest first,
// the order the chat-service returns them in.
func newestFirst(prefix string, n int, newest time.Duration) []model.Message {
	messages := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		sender := friendID
		if i%3 == 0 {
			sender = selfID
		}
		messages = append(messages, message(
			prefix+string(rune('a'+i)),
			sender,
			"text "+prefix+string(rune('a'+i)),
			newest-time.Duration(i)*time.Minute,
		))
	}
	return messages
}

func newTestFeed(gateway Gateway, drafts DraftStore) *Feed {
	return New(testConversationID, self, gateway, drafts, validator.New(), WithClock(func() time.Time {
		return baseTime.Add(time.Hour)
	}))
}

func texts(messages []model.Message) []string {
	out := make([]string, len(messages))
	for i, msg := range messages {
		out[i] = msg.Text
	}
	return out
}

func isAscending(messages []model.Message) bool {
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			return false
		}
	}
	return true
}
