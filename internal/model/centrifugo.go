package model

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// Server API publish request.
type CentrifugoEvent struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type CentrifugoEventParams struct {
	Channel string        `json:"channel"`
	Data    StreamMessage `json:"data"`
}

type CentrifugoConnectClaims struct {
	jwt.RegisteredClaims
}

type CentrifugoSubscribeClaims struct {
	jwt.RegisteredClaims

	// Centrifugo специфичные поля
	Channel string `json:"channel"`
	Client  string `json:"client,omitempty"`

	// Кастомные поля для безопасности
	UserID   string `json:"user_id"`
	StreamID string `json:"stream_id"`
}

// Client protocol (JSON transport). An empty command/reply is a ping/pong.
type CentrifugoCommand struct {
	ID        uint32                      `json:"id,omitempty"`
	Connect   *CentrifugoConnectRequest   `json:"connect,omitempty"`
	Subscribe *CentrifugoSubscribeRequest `json:"subscribe,omitempty"`
}

type CentrifugoConnectRequest struct {
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
}

type CentrifugoSubscribeRequest struct {
	Channel string `json:"channel"`
	Token   string `json:"token,omitempty"`
}

type CentrifugoReply struct {
	ID        uint32           `json:"id,omitempty"`
	Error     *CentrifugoError `json:"error,omitempty"`
	Push      *CentrifugoPush  `json:"push,omitempty"`
	Connect   json.RawMessage  `json:"connect,omitempty"`
	Subscribe json.RawMessage  `json:"subscribe,omitempty"`
}

type CentrifugoError struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

type CentrifugoPush struct {
	Channel string                 `json:"channel"`
	Pub     *CentrifugoPublication `json:"pub,omitempty"`
}

type CentrifugoPublication struct {
	Data json.RawMessage `json:"data"`
}

// IsPing reports whether the reply is an empty frame the client must answer with an empty command.
func (r CentrifugoReply) IsPing() bool {
	return r.ID == 0 && r.Error == nil && r.Push == nil && r.Connect == nil && r.Subscribe == nil
}
