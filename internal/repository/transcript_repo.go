package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"induk-agents/internal/domain"
)

// TranscriptRepository archiva los mensajes de cada conversacion.
type TranscriptRepository interface {
	Record(ctx context.Context, conversationID string, message domain.Message) error
	ListByConversationID(ctx context.Context, conversationID string) ([]domain.Message, error)
}

const transcriptSchema = `
	CREATE TABLE IF NOT EXISTS conversations (
		id         TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS conversation_messages (
		id              TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id),
		role            TEXT NOT NULL,
		content         TEXT NOT NULL,
		agent           TEXT,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS conversation_messages_conversation_idx
		ON conversation_messages (conversation_id, created_at);
`

type PgTranscriptRepository struct {
	pool *pgxpool.Pool
}

func NewPgTranscriptRepository(pool *pgxpool.Pool) *PgTranscriptRepository {
	return &PgTranscriptRepository{pool: pool}
}

// EnsureSchema crea las tablas del archivo si no existen.
func (r *PgTranscriptRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, transcriptSchema)
	return err
}

func (r *PgTranscriptRepository) Record(ctx context.Context, conversationID string, message domain.Message) error {
	const upsertConversation = `
		INSERT INTO conversations (id, created_at)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	const insertMessage = `
		INSERT INTO conversation_messages (id, conversation_id, role, content, agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var agent interface{}
	if message.Agent != nil {
		agent = message.Agent.String()
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertConversation, conversationID, message.Timestamp); err != nil {
			return fmt.Errorf("upsert conversation: %w", err)
		}
		if _, err := tx.Exec(ctx, insertMessage,
			message.ID,
			conversationID,
			message.Role,
			message.Content,
			agent,
			message.Timestamp,
		); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		return nil
	})
}

func (r *PgTranscriptRepository) ListByConversationID(ctx context.Context, conversationID string) ([]domain.Message, error) {
	const query = `
		SELECT id, role, content, agent, created_at
		FROM conversation_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var agentValue *string

		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &agentValue, &msg.Timestamp); err != nil {
			return nil, err
		}
		if agentValue != nil {
			role := domain.AgentRole(*agentValue)
			msg.Agent = &role
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
