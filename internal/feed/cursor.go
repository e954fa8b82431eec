package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/metrics"
	"github.com/s21platform/chat-feed/internal/model"
)

// LoadInitial fetches the newest page. When older pages are already loaded it
// acts as a refresh and keeps the cursor. Returns the number of new messages.
func (f *Feed) LoadInitial(ctx context.Context, limit int) (int, error) {
	return f.load(ctx, limit, metrics.LoadInitial)
}

// LoadMore fetches the page preceding the oldest loaded message. It is a no-op
// while another load is in flight or when the history is exhausted.
func (f *Feed) LoadMore(ctx context.Context, limit int) (int, error) {
	return f.load(ctx, limit, metrics.LoadOlder)
}

func (f *Feed) Cursor() model.Cursor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

func (f *Feed) load(ctx context.Context, limit int, kind string) (int, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("load")

	if limit <= 0 {
		limit = DefaultPageSize
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return 0, model.ErrFeedClosed
	}
	if f.loading {
		f.mu.Unlock()
		return 0, nil
	}
	if kind == metrics.LoadOlder && !f.cursor.HasMore {
		f.mu.Unlock()
		return 0, nil
	}

	params := model.ListParams{
		ConversationID: f.conversationID,
		Limit:          limit,
	}
	if kind == metrics.LoadOlder && !f.cursor.OldestLoaded.IsZero() {
		before := f.cursor.OldestLoaded
		params.Before = &before
		params.BeforeID = f.cursor.OldestID
	}
	refresh := kind == metrics.LoadInitial && !f.cursor.OldestLoaded.IsZero()
	f.loading = true
	f.mu.Unlock()
	f.notify()

	start := time.Now()
	page, err := f.gateway.List(ctx, params)
	duration := time.Since(start).Seconds()

	f.mu.Lock()
	f.loading = false
	if f.closed {
		f.mu.Unlock()
		return 0, model.ErrFeedClosed
	}
	if err != nil {
		f.mu.Unlock()
		f.notify()

		metrics.RecordPageLoad(kind, metrics.ResultFailure, duration)
		logger.Error(fmt.Sprintf("failed to load messages for conversation %s: %v", f.conversationID, err))
		return 0, &model.TransportError{Op: "load messages", Err: err}
	}
	if page == nil {
		page = &model.Page{}
	}

	added := f.mergePage(page.Messages)
	if !refresh {
		f.advanceCursor(page, limit)
	}
	f.mu.Unlock()
	f.notify()

	metrics.RecordPageLoad(kind, metrics.ResultSuccess, duration)
	return added, nil
}

// mergePage adds page messages not yet known by id and keeps the list in
// ascending time order. Expects f.mu to be held.
func (f *Feed) mergePage(page []model.Message) int {
	if len(page) == 0 {
		return 0
	}

	known := make(map[string]struct{}, len(f.messages))
	for _, msg := range f.messages {
		if msg.ID != "" {
			known[msg.ID] = struct{}{}
		}
	}

	fresh := make([]model.Message, 0, len(page))
	for _, msg := range page {
		if msg.ID != "" {
			if _, ok := known[msg.ID]; ok {
				continue
			}
			known[msg.ID] = struct{}{}
		}
		fresh = append(fresh, msg)
	}
	if len(fresh) == 0 {
		return 0
	}

	merged := make([]model.Message, 0, len(fresh)+len(f.messages))
	merged = append(merged, fresh...)
	merged = append(merged, f.messages...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	f.messages = merged

	return len(fresh)
}

// advanceCursor moves the cursor to the oldest message of the page, keyed by
// timestamp and id. Expects f.mu to be held.
func (f *Feed) advanceCursor(page *model.Page, limit int) {
	f.cursor.HasMore = len(page.Messages) >= limit
	if len(page.Messages) == 0 {
		return
	}

	oldest, oldestID := page.Messages[0].CreatedAt, page.Messages[0].ID
	for _, msg := range page.Messages[1:] {
		if olderKey(msg.CreatedAt, msg.ID, oldest, oldestID) {
			oldest, oldestID = msg.CreatedAt, msg.ID
		}
	}
	if page.NextCursor != nil && !page.NextCursor.Equal(oldest) {
		oldest, oldestID = *page.NextCursor, ""
	}
	if f.cursor.OldestLoaded.IsZero() || olderKey(oldest, oldestID, f.cursor.OldestLoaded, f.cursor.OldestID) {
		f.cursor.OldestLoaded = oldest
		f.cursor.OldestID = oldestID
	}
}

// olderKey orders (timestamp, id) pairs. An empty id at equal timestamps means
// the whole timestamp is already covered and never counts as older.
func olderKey(t time.Time, id string, than time.Time, thanID string) bool {
	if !t.Equal(than) {
		return t.Before(than)
	}
	return id != "" && thanID != "" && id < thanID
}
