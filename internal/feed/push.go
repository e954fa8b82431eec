package feed

import (
	"github.com/s21platform/chat-feed/internal/metrics"
	"github.com/s21platform/chat-feed/internal/model"
)

// OnPush merges a realtime delivery. A known id is ignored; a message from the
// local user whose text equals the unresolved pending send confirms that send;
// anything else is inserted in time order.
func (f *Feed) OnPush(msg model.Message) {
	f.mu.Lock()
	if f.closed || msg.ConversationID != f.conversationID {
		f.mu.Unlock()
		metrics.RecordPush(metrics.PushIgnored)
		return
	}
	outcome := f.applyPush(msg)
	f.mu.Unlock()

	metrics.RecordPush(outcome)
	if outcome != metrics.PushDuplicate {
		f.notify()
	}
}

// applyPush expects f.mu to be held.
func (f *Feed) applyPush(msg model.Message) string {
	if msg.ID != "" && f.indexOfID(msg.ID) >= 0 {
		return metrics.PushDuplicate
	}

	// Text match is a heuristic: two identical sends in a row can only be told
	// apart once the gateway echoes a client correlation token.
	if p := f.pending; p != nil && p.State == model.Sending && p.Message.Text == msg.Text && f.isOwn(msg) {
		f.resolvePending(p, msg)
		return metrics.PushConfirmed
	}

	f.insertOrdered(msg)
	return metrics.PushAppended
}

func (f *Feed) isOwn(msg model.Message) bool {
	return msg.SenderID == "" || msg.SenderID == f.self.ID
}
