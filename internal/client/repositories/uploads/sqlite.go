package uploads

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/dbx"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, u *models.Upload) error {
	query := `INSERT INTO uploads (object_key, user_id, name, content_type, size, upload_status, created_at)
			values (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(object_key) DO UPDATE SET user_id = excluded.user_id,
				name = excluded.name,
				content_type = excluded.content_type,
				size = excluded.size,
				upload_status = excluded.upload_status
	`
	_, err := r.db.ExecContext(ctx, query, u.ObjectKey, u.UserID, u.Name, u.ContentType, u.Size,
		u.UploadStatus, u.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert upload: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkUploaded(ctx context.Context, objectKey string) error {
	query := `update uploads set upload_status=? where object_key=?`
	res, err := r.db.ExecContext(ctx, query, models.UploadCompleted, objectKey)
	if err != nil {
		return fmt.Errorf("failed to mark upload: %w", err)
	}

	n, err := dbx.RowsAffected(res)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("upload %s: %w", objectKey, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]*models.Upload, error) {
	return r.list(ctx, `where upload_status=? order by created_at`, models.UploadPending)
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Upload, error) {
	return r.list(ctx, `where user_id=? order by created_at desc`, userID)
}

func (r *SQLiteRepository) list(ctx context.Context, where string, arg any) ([]*models.Upload, error) {
	query := `select object_key, user_id, name, content_type, size, upload_status, created_at from uploads ` + where
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error selecting uploads: %w", err)
	}
	defer rows.Close()

	var result []*models.Upload
	for rows.Next() {
		var (
			item      = &models.Upload{}
			createdAt string
		)
		if err := rows.Scan(&item.ObjectKey, &item.UserID, &item.Name, &item.ContentType, &item.Size,
			&item.UploadStatus, &createdAt); err != nil {
			return nil, err
		}
		if item.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at for upload %s: %w", item.ObjectKey, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
