//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"

	"github.com/s21platform/chat-feed/internal/model"
)

type FeedSession interface {
	Open(ctx context.Context, conversationID string) (model.Snapshot, string, error)
	Snapshot() (model.Snapshot, error)
	LoadMore(ctx context.Context, limit int) (int, error)
	Send(ctx context.Context, text string) (*model.Message, error)
	Draft(ctx context.Context) (model.Draft, error)
	SaveDraft(ctx context.Context, text string) (model.Draft, error)
}

type RowBuilder interface {
	Rows(messages []model.Message) []model.Row
}

type Validator interface {
	ValidateConversationID(id string) error
	ValidatePageSize(limit int) error
}
