// Package messages persists chat room messages.
//
// Each message is stored with a per-room sequence number assigned at insert
// time, so a room's history always reads back in posting order regardless of
// clock skew between writers.
//
// Typical Usage
//
//	repo := messages.NewSQLiteRepository(db)
//	_ = repo.Append(ctx, &msg) // msg.Seq is filled in
//	list, _ := repo.ListByRoom(ctx, roomID)
package messages
