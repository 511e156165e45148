package uploads

import (
	"context"

	"github.com/dmitrijs2005/archedata/internal/client/models"
)

// Repository describes the upload ledger.
type Repository interface {
	// CreateOrUpdate inserts or replaces the record keyed by ObjectKey.
	CreateOrUpdate(ctx context.Context, u *models.Upload) error

	// MarkUploaded flips a pending record to completed.
	MarkUploaded(ctx context.Context, objectKey string) error

	// GetAllPending returns records whose upload has not completed.
	GetAllPending(ctx context.Context) ([]*models.Upload, error)

	// ListByUser returns a user's records, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Upload, error)
}
