// Package gateway joins a message store with an optional realtime source.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

var ErrNoRealtime = errors.New("realtime delivery is not configured")

type Gateway struct {
	store    Store
	realtime Realtime
}

// New builds a gateway. realtime may be nil for pull-only operation.
func New(store Store, realtime Realtime) *Gateway {
	return &Gateway{
		store:    store,
		realtime: realtime,
	}
}

func (g *Gateway) List(ctx context.Context, params model.ListParams) (*model.Page, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("List")

	page, err := g.store.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if page == nil {
		page = &model.Page{}
	}
	if params.Limit > 0 && len(page.Messages) > params.Limit {
		logger.Warn(fmt.Sprintf("store returned %d messages for limit %d, truncating", len(page.Messages), params.Limit))
		// keep the newest rows whatever order the store used
		messages := make([]model.Message, len(page.Messages))
		copy(messages, page.Messages)
		sort.SliceStable(messages, func(i, j int) bool {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		})
		page.Messages = messages[:params.Limit]
	}

	return page, nil
}

func (g *Gateway) Send(ctx context.Context, conversationID, text string) (*model.Message, error) {
	msg, err := g.store.Send(ctx, conversationID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

func (g *Gateway) Subscribe(ctx context.Context, conversationID string, onMessage func(model.Message)) (func(), error) {
	if g.realtime == nil {
		return nil, &model.SubscriptionError{ConversationID: conversationID, Err: ErrNoRealtime}
	}
	return g.realtime.Subscribe(ctx, conversationID, onMessage)
}
