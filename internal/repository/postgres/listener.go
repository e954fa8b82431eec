package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener delivers messages stored by any Repository through LISTEN/NOTIFY.
type Listener struct {
	connString string
	channel    string
}

func NewListener(cfg *config.Config) *Listener {
	return &Listener{
		connString: ConnString(cfg),
		channel:    cfg.Postgres.NotifyChannel,
	}
}

// Subscribe opens a dedicated LISTEN connection and delivers notifications of
// the conversation until the returned func is called.
func (l *Listener) Subscribe(ctx context.Context, conversationID string, onMessage func(model.Message)) (func(), error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Listener.Subscribe")

	listener := pq.NewListener(l.connString, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn(fmt.Sprintf("postgres listener event %d: %v", ev, err))
		}
	})
	if err := listener.Listen(l.channel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %v", l.channel, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				go func() {
					_ = listener.Ping()
				}()
			case n := <-listener.Notify:
				// nil after a reconnect
				if n == nil {
					continue
				}
				msg, err := decodeNotification(n.Extra)
				if err != nil {
					logger.Warn(fmt.Sprintf("skipping notification: %v", err))
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
			close(stop)
			<-done
			if err := listener.Close(); err != nil {
				logger.Warn(fmt.Sprintf("failed to close listener: %v", err))
			}
		})
	}, nil
}

func decodeNotification(payload string) (model.Message, error) {
	var msg model.StreamMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return model.Message{}, fmt.Errorf("failed to decode notification: %v", err)
	}
	return msg.ToMessage(), nil
}
