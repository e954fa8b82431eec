package centrifugo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/websocket"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

const (
	connectCommandID   = 1
	subscribeCommandID = 2
)

// Subscriber receives conversation publications over the Centrifugo
// websocket client protocol. Every Subscribe opens its own connection.
type Subscriber struct {
	wsURL  string
	name   string
	tokens TokenSource
}

func NewSubscriber(cfg *config.Config, tokens TokenSource) *Subscriber {
	return &Subscriber{
		wsURL:  cfg.Centrifuge.WSURL,
		name:   cfg.Service.Name,
		tokens: tokens,
	}
}

// Subscribe connects, subscribes to the conversation channel and delivers
// publications to onMessage until the returned func is called. ctx bounds the
// handshake only.
func (s *Subscriber) Subscribe(ctx context.Context, conversationID string, onMessage func(model.Message)) (func(), error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Subscribe")

	connectToken, err := s.tokens.ConnectToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connect token: %w", err)
	}
	subscribeToken, err := s.tokens.SubscribeToken(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribe token: %w", err)
	}

	conn, _, err := websocket.Dial(ctx, s.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial centrifugo: %w", err)
	}

	handshake := []model.CentrifugoCommand{
		{ID: connectCommandID, Connect: &model.CentrifugoConnectRequest{Token: connectToken, Name: s.name}},
		{ID: subscribeCommandID, Subscribe: &model.CentrifugoSubscribeRequest{Channel: conversationID, Token: subscribeToken}},
	}
	for _, cmd := range handshake {
		if err := s.call(ctx, conn, cmd, conversationID, onMessage); err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return nil, err
		}
	}

	pumpCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := s.pump(pumpCtx, conn, conversationID, onMessage)
		if err != nil && pumpCtx.Err() == nil {
			logger.Warn(fmt.Sprintf("centrifugo stream for conversation %s stopped: %v", conversationID, err))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			_ = conn.Close(websocket.StatusNormalClosure, "")
			<-done
		})
	}, nil
}

// call writes cmd and reads until its reply arrives.
func (s *Subscriber) call(ctx context.Context, conn *websocket.Conn, cmd model.CentrifugoCommand, channel string, onMessage func(model.Message)) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}

	for {
		replies, err := readReplies(ctx, conn)
		if err != nil {
			return err
		}
		for _, reply := range replies {
			if reply.ID != cmd.ID {
				if err := s.handle(ctx, conn, reply, channel, onMessage); err != nil {
					return err
				}
				continue
			}
			if reply.Error != nil {
				return fmt.Errorf("centrifugo error %d: %s", reply.Error.Code, reply.Error.Message)
			}
			return nil
		}
	}
}

func (s *Subscriber) pump(ctx context.Context, conn *websocket.Conn, channel string, onMessage func(model.Message)) error {
	for {
		replies, err := readReplies(ctx, conn)
		if err != nil {
			return err
		}
		for _, reply := range replies {
			if err := s.handle(ctx, conn, reply, channel, onMessage); err != nil {
				return err
			}
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, conn *websocket.Conn, reply model.CentrifugoReply, channel string, onMessage func(model.Message)) error {
	if reply.IsPing() {
		if err := conn.Write(ctx, websocket.MessageText, []byte("{}")); err != nil {
			return fmt.Errorf("failed to answer ping: %w", err)
		}
		return nil
	}

	if reply.Push == nil || reply.Push.Pub == nil || reply.Push.Channel != channel {
		return nil
	}

	var msg model.StreamMessage
	if err := json.Unmarshal(reply.Push.Pub.Data, &msg); err != nil {
		return fmt.Errorf("failed to decode publication: %w", err)
	}
	onMessage(msg.ToMessage())
	return nil
}

// readReplies reads one frame; a frame may hold several newline separated replies.
func readReplies(ctx context.Context, conn *websocket.Conn) ([]model.CentrifugoReply, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	var replies []model.CentrifugoReply
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var reply model.CentrifugoReply
		if err := json.Unmarshal(line, &reply); err != nil {
			return nil, fmt.Errorf("failed to decode reply: %w", err)
		}
		replies = append(replies, reply)
	}
	if len(replies) == 0 {
		return nil, errors.New("empty frame")
	}
	return replies, nil
}
