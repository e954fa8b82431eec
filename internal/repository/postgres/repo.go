// Package postgres reads and writes the chat-service tables directly.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

const defaultLimit = 50

type Repository struct {
	connection *sqlx.DB
	channel    string
	self       model.User
	publishers []Publisher
}

func ConnString(cfg *config.Config) string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)
}

func New(cfg *config.Config, publishers ...Publisher) *Repository {
	conn, err := sqlx.Connect("postgres", ConnString(cfg))
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	return &Repository{
		connection: conn,
		channel:    cfg.Postgres.NotifyChannel,
		self: model.User{
			ID:          cfg.Feed.UserID,
			DisplayName: cfg.Feed.UserDisplayName,
			AvatarRef:   cfg.Feed.UserAvatarRef,
		},
		publishers: publishers,
	}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

// List returns one page of the stream, newest first.
func (r *Repository) List(ctx context.Context, params model.ListParams) (*model.Page, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	// one extra row tells whether an older page exists
	messages, err := r.GetStreamRecentMessages(ctx, params.ConversationID, params.Before, params.BeforeID, limit+1)
	if err != nil {
		return nil, err
	}

	page := &model.Page{}
	if len(messages) > limit {
		messages = messages[:limit]
		next := messages[limit-1].SentAt
		page.NextCursor = &next
	}

	page.Messages = make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		page.Messages = append(page.Messages, msg.ToMessage())
	}

	return page, nil
}

func (r *Repository) GetStreamRecentMessages(ctx context.Context, streamID string, before *time.Time, beforeID string, limit int) (model.StreamMessageList, error) {
	query, args, err := recentMessagesQuery(streamID, before, beforeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var messages model.StreamMessageList
	err = r.connection.SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %v", err)
	}

	return messages, nil
}

// recentMessagesQuery pages on (sent_at, id) so rows sharing a timestamp are
// never skipped at a page boundary.
func recentMessagesQuery(streamID string, before *time.Time, beforeID string, limit int) (string, []interface{}, error) {
	queryBuilder := sq.Select(
		"m.id",
		"m.stream_id",
		"m.sender_id",
		"m.type",
		"m.content",
		"m.sent_at",
		"m.updated_at",
		"u.nickname AS sender_nickname",
		"u.avatar_url AS sender_avatar",
	).
		From("messages m").
		LeftJoin("users u ON u.id = m.sender_id").
		Where(sq.Eq{"m.stream_id": streamID}).
		Where(sq.Eq{"m.deleted_at": nil}).
		OrderBy("m.sent_at DESC", "m.id DESC")

	switch {
	case before != nil && beforeID != "":
		queryBuilder = queryBuilder.Where(sq.Expr("(m.sent_at, m.id) < (?, ?::uuid)", *before, beforeID))
	case before != nil:
		queryBuilder = queryBuilder.Where(sq.Lt{"m.sent_at": *before})
	}

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	} else {
		queryBuilder = queryBuilder.Limit(defaultLimit)
	}

	return queryBuilder.PlaceholderFormat(sq.Dollar).ToSql()
}

// Send stores a text message from the configured user and fans it out.
func (r *Repository) Send(ctx context.Context, conversationID, text string) (*model.Message, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Send")

	streamID, err := uuid.Parse(conversationID)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation id: %v", err)
	}
	senderID, err := uuid.Parse(r.self.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %v", err)
	}

	nickname := r.self.DisplayName
	message := model.StreamMessage{
		ID:             uuid.New(),
		StreamID:       streamID,
		SenderID:       senderID,
		Type:           model.TextMessageType,
		Content:        text,
		SentAt:         time.Now().UTC(),
		SenderNickname: &nickname,
	}
	if r.self.AvatarRef != "" {
		avatar := r.self.AvatarRef
		message.SenderAvatar = &avatar
	}

	if err := r.SaveMessage(ctx, &message); err != nil {
		return nil, err
	}

	for _, publisher := range r.publishers {
		if err := publisher.Publish(ctx, conversationID, message); err != nil {
			logger.Error(fmt.Sprintf("failed to publish message to stream: %v", err))
		}
	}

	msg := message.ToMessage()
	return &msg, nil
}

// SaveMessage inserts the message and notifies listeners of the channel in one transaction.
func (r *Repository) SaveMessage(ctx context.Context, message *model.StreamMessage) error {
	insert, args, err := sq.Insert("messages").
		Columns("id", "stream_id", "sender_id", "type", "content", "sent_at").
		Values(message.ID, message.StreamID, message.SenderID, message.Type, message.Content, message.SentAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %v", err)
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("failed to save message: %v", err)
		}
		if _, err := tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", r.channel, string(payload)); err != nil {
			return fmt.Errorf("failed to notify listeners: %v", err)
		}
		return nil
	})
}

func (r *Repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}
