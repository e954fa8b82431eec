package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

// Session holds the feed of the conversation currently on screen. Switching
// conversations closes the previous feed before the next one subscribes.
type Session struct {
	self      model.User
	gateway   Gateway
	drafts    DraftStore
	validator Validator
	pageSize  int
	opts      []Option

	mu     sync.Mutex
	active *Feed
}

func NewSession(
	self model.User,
	gateway Gateway,
	drafts DraftStore,
	validator Validator,
	pageSize int,
	opts ...Option,
) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		self:      self,
		gateway:   gateway,
		drafts:    drafts,
		validator: validator,
		pageSize:  pageSize,
		opts:      opts,
	}
}

func (s *Session) PageSize() int {
	return s.pageSize
}

// Switch makes conversationID the active conversation and returns its feed
// together with the stored draft. A subscription failure only degrades the
// feed; a failed first page is returned as error with the feed still active.
func (s *Session) Switch(ctx context.Context, conversationID string) (*Feed, string, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Switch")

	s.mu.Lock()
	if s.active != nil && s.active.ConversationID() == conversationID {
		f := s.active
		s.mu.Unlock()

		draft := s.drafts.Load(ctx, conversationID)
		// first page never arrived; retry it
		if cursor := f.Cursor(); cursor.HasMore && cursor.OldestLoaded.IsZero() {
			if _, err := f.LoadInitial(ctx, s.pageSize); err != nil {
				return f, draft, err
			}
		}
		return f, draft, nil
	}
	if s.active != nil {
		s.active.Close()
	}
	f := New(conversationID, s.self, s.gateway, s.drafts, s.validator, s.opts...)
	s.active = f
	s.mu.Unlock()

	if err := f.Open(ctx); err != nil {
		var subErr *model.SubscriptionError
		if !errors.As(err, &subErr) {
			return nil, "", err
		}
	}

	draft := s.drafts.Load(ctx, conversationID)

	if _, err := f.LoadInitial(ctx, s.pageSize); err != nil {
		return f, draft, err
	}

	logger.Info(fmt.Sprintf("switched to conversation %s", conversationID))
	return f, draft, nil
}

// Open is Switch for callers that only need the resulting state.
func (s *Session) Open(ctx context.Context, conversationID string) (model.Snapshot, string, error) {
	f, draft, err := s.Switch(ctx, conversationID)
	if f == nil {
		return model.Snapshot{}, draft, err
	}
	return f.Snapshot(), draft, err
}

// Active returns the current feed or model.ErrNoConversation.
func (s *Session) Active() (*Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, model.ErrNoConversation
	}
	return s.active, nil
}

func (s *Session) Snapshot() (model.Snapshot, error) {
	f, err := s.Active()
	if err != nil {
		return model.Snapshot{}, err
	}
	return f.Snapshot(), nil
}

// LoadMore loads an older page of the active conversation. limit <= 0 uses the session page size.
func (s *Session) LoadMore(ctx context.Context, limit int) (int, error) {
	f, err := s.Active()
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	return f.LoadMore(ctx, limit)
}

func (s *Session) Send(ctx context.Context, text string) (*model.Message, error) {
	f, err := s.Active()
	if err != nil {
		return nil, err
	}
	return f.Send(ctx, text)
}

func (s *Session) Draft(ctx context.Context) (model.Draft, error) {
	f, err := s.Active()
	if err != nil {
		return model.Draft{}, err
	}
	return model.Draft{
		ConversationID: f.ConversationID(),
		Text:           s.drafts.Load(ctx, f.ConversationID()),
	}, nil
}

func (s *Session) SaveDraft(ctx context.Context, text string) (model.Draft, error) {
	f, err := s.Active()
	if err != nil {
		return model.Draft{}, err
	}
	s.drafts.Save(ctx, f.ConversationID(), text)
	return model.Draft{ConversationID: f.ConversationID(), Text: text}, nil
}

// Close releases the active feed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.active.Close()
		s.active = nil
	}
}
