//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package gateway

import (
	"context"

	"github.com/s21platform/chat-feed/internal/model"
)

// Store lists and sends messages. Both chatapi.Client and postgres.Repository implement it.
type Store interface {
	List(ctx context.Context, params model.ListParams) (*model.Page, error)
	Send(ctx context.Context, conversationID, text string) (*model.Message, error)
}

// Realtime pushes new messages of a conversation.
type Realtime interface {
	Subscribe(ctx context.Context, conversationID string, onMessage func(model.Message)) (func(), error)
}
