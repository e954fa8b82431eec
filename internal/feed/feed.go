// Package feed keeps the in-memory message list of one conversation consistent
// with a remote gateway: backward pagination, optimistic sends and realtime echoes.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/metrics"
	"github.com/s21platform/chat-feed/internal/model"
)

const DefaultPageSize = 50

type Option func(*Feed)

// WithClock replaces time.Now for optimistic timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Feed) {
		f.now = now
	}
}

// Feed owns the message list, pagination cursor and pending-send slot of a
// single conversation. All methods are safe for concurrent use.
type Feed struct {
	conversationID string
	self           model.User
	gateway        Gateway
	drafts         DraftStore
	validator      Validator
	now            func() time.Time

	mu           sync.Mutex
	messages     []model.Message
	cursor       model.Cursor
	loading      bool
	pending      *model.PendingSend
	connectivity model.Connectivity
	unsubscribe  func()
	closed       bool

	changes chan struct{}
}

func New(
	conversationID string,
	self model.User,
	gateway Gateway,
	drafts DraftStore,
	validator Validator,
	opts ...Option,
) *Feed {
	f := &Feed{
		conversationID: conversationID,
		self:           self,
		gateway:        gateway,
		drafts:         drafts,
		validator:      validator,
		now:            time.Now,
		cursor:         model.Cursor{HasMore: true},
		connectivity:   model.ConnectivityConnecting,
		changes:        make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Feed) ConversationID() string {
	return f.conversationID
}

func (f *Feed) Self() model.User {
	return f.self
}

// Changes is signalled after every state change. Signals coalesce.
func (f *Feed) Changes() <-chan struct{} {
	return f.changes
}

func (f *Feed) Snapshot() model.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := model.Snapshot{
		ConversationID: f.conversationID,
		Messages:       make([]model.Message, len(f.messages)),
		Cursor:         f.cursor,
		Loading:        f.loading,
		PendingState:   model.Composing,
		Connectivity:   f.connectivity,
	}
	copy(snapshot.Messages, f.messages)
	if f.pending != nil {
		snapshot.PendingState = f.pending.State
	}
	return snapshot
}

// Open subscribes to realtime delivery. A failed subscription leaves the feed
// usable in pull-only mode and is reported as *model.SubscriptionError.
func (f *Feed) Open(ctx context.Context) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Open")

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return model.ErrFeedClosed
	}
	if f.unsubscribe != nil {
		f.mu.Unlock()
		return nil
	}
	f.connectivity = model.ConnectivityConnecting
	f.mu.Unlock()

	unsubscribe, err := f.gateway.Subscribe(ctx, f.conversationID, f.OnPush)

	f.mu.Lock()
	if err != nil {
		f.connectivity = model.ConnectivityDegraded
		f.mu.Unlock()
		f.notify()

		metrics.RecordSubscription(metrics.ResultFailure)
		var subErr *model.SubscriptionError
		if !errors.As(err, &subErr) {
			subErr = &model.SubscriptionError{ConversationID: f.conversationID, Err: err}
		}
		logger.Warn(fmt.Sprintf("realtime unavailable, pull-only mode: %v", subErr))
		return subErr
	}
	if f.closed {
		f.mu.Unlock()
		unsubscribe()
		return model.ErrFeedClosed
	}
	f.unsubscribe = unsubscribe
	f.connectivity = model.ConnectivityLive
	f.mu.Unlock()
	f.notify()

	metrics.RecordSubscription(metrics.ResultSuccess)
	return nil
}

// Close tears the subscription down before returning and makes every
// in-flight operation discard its result.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.connectivity = model.ConnectivityClosed
	unsubscribe := f.unsubscribe
	f.unsubscribe = nil
	if f.pending != nil && f.pending.State == model.Sending {
		f.pending.State = model.Failed
		metrics.PendingSends.Dec()
	}
	f.pending = nil
	f.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	f.notify()
}

func (f *Feed) notify() {
	select {
	case f.changes <- struct{}{}:
	default:
	}
}

// The helpers below expect f.mu to be held.

func (f *Feed) indexOfID(id string) int {
	if id == "" {
		return -1
	}
	for i := range f.messages {
		if f.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *Feed) indexOfClientKey(key string) int {
	for i := range f.messages {
		if f.messages[i].ID == "" && f.messages[i].ClientKey == key {
			return i
		}
	}
	return -1
}

func (f *Feed) removeAt(i int) {
	f.messages = append(f.messages[:i], f.messages[i+1:]...)
}

// insertOrdered places msg after every message created at or before it.
func (f *Feed) insertOrdered(msg model.Message) {
	i := sort.Search(len(f.messages), func(i int) bool {
		return f.messages[i].CreatedAt.After(msg.CreatedAt)
	})
	f.messages = append(f.messages, model.Message{})
	copy(f.messages[i+1:], f.messages[i:])
	f.messages[i] = msg
}
