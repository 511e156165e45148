// Package services contains the application services of the ArcheData
// client: the user directory and session, the entry repository and the chat
// room directory.
//
// Every read-modify-write runs in one SQL transaction and goes through a
// versioned collection, so two processes racing on the same data get
// common.ErrVersionConflict instead of silently overwriting each other.
// Authorization is enforced here, not by callers.
package services
