package feed

import (
	"context"
	"fmt"
	"strconv"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/metrics"
	"github.com/s21platform/chat-feed/internal/model"
)

// Send shows text as an optimistic entry right away and replaces it with the
// server copy once the gateway (or its realtime echo) confirms it. On failure
// the entry is removed and the returned *model.TransportError carries the text
// to restore. Only one send per conversation may be in flight.
func (f *Feed) Send(ctx context.Context, text string) (*model.Message, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Send")

	if err := f.validator.ValidateSendText(text); err != nil {
		metrics.RecordSend(metrics.ResultRejected)
		return nil, err
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, model.ErrFeedClosed
	}
	if f.pending != nil && f.pending.State == model.Sending {
		f.mu.Unlock()
		metrics.RecordSend(metrics.ResultRejected)
		return nil, model.ErrAlreadySending
	}

	now := f.now()
	key := model.OptimisticKeyPrefix + strconv.FormatInt(now.UnixNano(), 10)
	createdAt := now
	// a local clock behind the server must not put the entry above loaded history
	if n := len(f.messages); n > 0 && createdAt.Before(f.messages[n-1].CreatedAt) {
		createdAt = f.messages[n-1].CreatedAt
	}
	pending := &model.PendingSend{
		Key: key,
		Message: model.Message{
			ConversationID:    f.conversationID,
			SenderID:          f.self.ID,
			Text:              text,
			CreatedAt:         createdAt,
			SenderDisplayName: f.self.DisplayName,
			SenderAvatarRef:   f.self.AvatarRef,
			ClientKey:         key,
		},
		State: model.Sending,
	}
	f.pending = pending
	f.insertOrdered(pending.Message)
	metrics.PendingSends.Inc()
	f.mu.Unlock()
	f.notify()

	confirmed, err := f.gateway.Send(ctx, f.conversationID, text)

	if err == nil && confirmed != nil {
		// The text is on the server whether or not the feed is still open.
		f.drafts.Clear(ctx, f.conversationID)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, model.ErrFeedClosed
	}

	if err != nil || confirmed == nil {
		if err == nil {
			err = fmt.Errorf("gateway returned no message")
		}
		if !f.failPending(pending) {
			// The realtime echo confirmed the message first; it stays.
			msg := f.messageByClientKey(pending.Key)
			f.mu.Unlock()
			logger.Warn(fmt.Sprintf("send reported failure after echo confirmation: %v", err))
			metrics.RecordSend(metrics.ResultSuccess)
			return msg, nil
		}
		f.mu.Unlock()
		f.notify()

		metrics.RecordSend(metrics.ResultFailure)
		logger.Error(fmt.Sprintf("failed to send message to conversation %s: %v", f.conversationID, err))
		return nil, &model.TransportError{Op: "send message", RestoreText: text, Err: err}
	}

	msg := *confirmed
	if msg.ConversationID == "" {
		msg.ConversationID = f.conversationID
	}
	if !f.resolvePending(pending, msg) {
		// Echo won the race; hand back the entry it left in the list.
		if existing := f.messageByClientKey(pending.Key); existing != nil {
			msg = *existing
		}
	}
	msg.ClientKey = pending.Key
	f.mu.Unlock()
	f.notify()

	metrics.RecordSend(metrics.ResultSuccess)
	return &msg, nil
}

// resolvePending is the only place a pending send becomes Confirmed. It
// returns false when the send was already resolved. Expects f.mu to be held.
func (f *Feed) resolvePending(pending *model.PendingSend, msg model.Message) bool {
	if pending.State != model.Sending {
		return false
	}
	pending.State = model.Confirmed
	metrics.PendingSends.Dec()

	msg.ClientKey = pending.Key
	if i := f.indexOfClientKey(pending.Key); i >= 0 {
		f.removeAt(i)
	}
	if f.indexOfID(msg.ID) < 0 {
		f.insertOrdered(msg)
	}
	if f.pending == pending {
		f.pending = nil
	}
	return true
}

// failPending removes an unresolved optimistic entry. Expects f.mu to be held.
func (f *Feed) failPending(pending *model.PendingSend) bool {
	if pending.State != model.Sending {
		return false
	}
	pending.State = model.Failed
	metrics.PendingSends.Dec()

	if i := f.indexOfClientKey(pending.Key); i >= 0 {
		f.removeAt(i)
	}
	if f.pending == pending {
		f.pending = nil
	}
	return true
}

// messageByClientKey finds a message, confirmed or not, by its optimistic key.
// Expects f.mu to be held.
func (f *Feed) messageByClientKey(key string) *model.Message {
	for i := range f.messages {
		if f.messages[i].ClientKey == key {
			msg := f.messages[i]
			return &msg
		}
	}
	return nil
}
