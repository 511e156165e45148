package models

import "time"

// RoomTags classify a chat room.
type RoomTags struct {
	Country        string `json:"country"`
	Language       string `json:"language"`
	Specialization string `json:"specialization"`
}

type ChatRoom struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     int      `json:"members"`
	Tags        RoomTags `json:"tags"`
}

const (
	SystemUserID   = "system"
	SystemUserName = "System"
)

// ChatMessage is a persisted room message. Seq is assigned by the store and
// is strictly increasing within a room.
type ChatMessage struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	Seq       int64     `json:"seq"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayTime formats t the way message timestamps are shown (HH:MM).
func DisplayTime(t time.Time) string {
	return t.Format("15:04")
}
