//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package feed

import (
	"context"

	"github.com/s21platform/chat-feed/internal/model"
)

// Gateway is the remote message store. Subscribe keeps delivering until the
// returned unsubscribe func is called; ctx only bounds the setup. Unsubscribe
// returns after the last delivery.
type Gateway interface {
	List(ctx context.Context, params model.ListParams) (*model.Page, error)
	Send(ctx context.Context, conversationID, text string) (*model.Message, error)
	Subscribe(ctx context.Context, conversationID string, onMessage func(model.Message)) (func(), error)
}

type DraftStore interface {
	Save(ctx context.Context, conversationID, text string)
	Load(ctx context.Context, conversationID string) string
	Clear(ctx context.Context, conversationID string)
}

type Validator interface {
	ValidateSendText(text string) error
}
