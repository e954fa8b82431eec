// Package jwt signs Centrifugo connection and subscription tokens locally when
// the Centrifugo HMAC secret is available to the client.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/s21platform/chat-feed/internal/model"
)

const tokenTTL = 30 * time.Minute

type Generator struct {
	secret []byte
	now    func() time.Time
}

func New(secret string) *Generator {
	return &Generator{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (g *Generator) GenerateConnectToken(userID string) (string, int64, error) {
	now := g.now()
	expiresAt := now.Add(tokenTTL)

	claims := model.CentrifugoConnectClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(g.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign connect JWT token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}

func (g *Generator) GenerateSubscribeToken(userID, conversationID string) (string, int64, error) {
	now := g.now()
	expiresAt := now.Add(tokenTTL)

	claims := model.CentrifugoSubscribeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Channel:  conversationID,
		UserID:   userID,
		StreamID: conversationID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(g.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign subscribe JWT token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}

// UserTokens issues tokens for one user. It satisfies centrifugo.TokenSource.
type UserTokens struct {
	generator *Generator
	userID    string
}

func (g *Generator) ForUser(userID string) *UserTokens {
	return &UserTokens{generator: g, userID: userID}
}

func (u *UserTokens) ConnectToken(context.Context) (string, error) {
	token, _, err := u.generator.GenerateConnectToken(u.userID)
	return token, err
}

func (u *UserTokens) SubscribeToken(_ context.Context, channel string) (string, error) {
	token, _, err := u.generator.GenerateSubscribeToken(u.userID, channel)
	return token, err
}
