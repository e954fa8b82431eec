// Package natsbus fans conversation messages out over core NATS subjects.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

const subscriptionBuffer = 64

// Subject returns the subject messages of a conversation are published on.
func Subject(conversationID string) string {
	return "chat." + conversationID + ".messages"
}

type Client struct {
	conn *nats.Conn
}

func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("natsbus.Connect")

	opts := []nats.Option{
		nats.Name(cfg.Service.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn(fmt.Sprintf("nats disconnected: %v", err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(fmt.Sprintf("nats reconnected to %s", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error(fmt.Sprintf("nats error: %v", err))
		}),
	}
	if cfg.NATS.Token != "" {
		opts = append(opts, nats.Token(cfg.NATS.Token))
	}

	nc, err := nats.Connect(cfg.NATS.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Client{conn: nc}, nil
}

func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// Publish sends msg on the subject of channel.
func (c *Client) Publish(_ context.Context, channel string, msg model.StreamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := c.conn.Publish(Subject(channel), data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Subscribe delivers messages of the conversation to onMessage until the
// returned func is called.
func (c *Client) Subscribe(ctx context.Context, conversationID string, onMessage func(model.Message)) (func(), error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("natsbus.Subscribe")

	ch := make(chan *nats.Msg, subscriptionBuffer)
	sub, err := c.conn.ChanSubscribe(Subject(conversationID), ch)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			case raw := <-ch:
				msg, err := Decode(raw.Data)
				if err != nil {
					logger.Warn(fmt.Sprintf("skipping message on %s: %v", raw.Subject, err))
					continue
				}
				if msg.ConversationID == conversationID {
					onMessage(msg)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := sub.Unsubscribe(); err != nil {
				logger.Warn(fmt.Sprintf("failed to unsubscribe from %s: %v", sub.Subject, err))
			}
			close(stop)
			<-done
		})
	}, nil
}

// Decode parses a published payload.
func Decode(data []byte) (model.Message, error) {
	var msg model.StreamMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return model.Message{}, fmt.Errorf("failed to decode message: %w", err)
	}
	return msg.ToMessage(), nil
}
