package models

import "time"

const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

// Upload tracks a document pushed to object storage on behalf of a user.
type Upload struct {
	ObjectKey    string
	UserID       string
	Name         string
	ContentType  string
	Size         int64
	UploadStatus string
	CreatedAt    time.Time
}
