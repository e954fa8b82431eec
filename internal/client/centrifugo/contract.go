//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package centrifugo

import "context"

// TokenSource issues connection and channel tokens for the local user.
type TokenSource interface {
	ConnectToken(ctx context.Context) (string, error)
	SubscribeToken(ctx context.Context, channel string) (string, error)
}
