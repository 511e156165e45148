// Package cli provides the interactive ArcheData terminal client.
//
// It drives the user, entry and chat services from a REPL: account
// registration and login, a personal field diary with optional AI
// analysis of notes, search over the public database, chat rooms with
// persisted history, and credential document uploads.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
