// Package models defines the ArcheData domain types: users, journal entries
// with their findings and timeline updates, and chat rooms with messages.
//
// JSON tags match the persisted collection format. Optional attributes are
// pointers (or nil slices) so that an absent value survives a store round
// trip as absent rather than as an empty string.
package models
