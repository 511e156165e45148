package messages

import (
	"context"

	"github.com/dmitrijs2005/archedata/internal/client/models"
)

// Repository stores chat messages per room.
type Repository interface {
	// Append stores msg and assigns msg.Seq.
	Append(ctx context.Context, msg *models.ChatMessage) error

	// ListByRoom returns the messages of roomID ordered by Seq.
	ListByRoom(ctx context.Context, roomID string) ([]models.ChatMessage, error)

	// DeleteByRoom drops a room's history.
	DeleteByRoom(ctx context.Context, roomID string) error
}
