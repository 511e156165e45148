package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, msg *models.ChatMessage) error {
	query := `INSERT INTO chat_messages (room_id, seq, id, user_id, user_name, text, timestamp, created_at)
			SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?, ?
			FROM chat_messages WHERE room_id = ?
			RETURNING seq`

	err := r.db.QueryRowContext(ctx, query,
		msg.RoomID, msg.ID, msg.UserID, msg.UserName, msg.Text, msg.Timestamp,
		msg.CreatedAt.UTC().Format(time.RFC3339Nano), msg.RoomID,
	).Scan(&msg.Seq)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByRoom(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	query := `select room_id, seq, id, user_id, user_name, text, timestamp, created_at
			from chat_messages where room_id=? order by seq`
	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	result := []models.ChatMessage{}
	for rows.Next() {
		var (
			item      models.ChatMessage
			createdAt string
		)
		if err := rows.Scan(&item.RoomID, &item.Seq, &item.ID, &item.UserID, &item.UserName,
			&item.Text, &item.Timestamp, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("bad created_at for message %s: %w", item.ID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByRoom(ctx context.Context, roomID string) error {
	_, err := r.db.ExecContext(ctx, `delete from chat_messages where room_id=?`, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
