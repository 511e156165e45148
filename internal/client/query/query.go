// Package query filters journal entries the way the public database search
// does: free text over title, description and tags, an inclusive date range,
// an exact finding material, and a location substring.
package query

import (
	"strings"

	"github.com/dmitrijs2005/archedata/internal/client/models"
)

// Filter holds the search criteria. Zero-valued fields do not constrain.
// Dates are ISO "YYYY-MM-DD" strings and compare lexicographically.
type Filter struct {
	Query     string
	StartDate string
	EndDate   string
	Material  string
	Location  string
}

// IsZero reports whether f matches every entry.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Apply returns the entries matching f in their original order.
func Apply(entries []models.JournalEntry, f Filter) []models.JournalEntry {
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, f) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether e satisfies every constraint of f.
func Matches(e models.JournalEntry, f Filter) bool {
	return matchesText(e, f.Query) &&
		(f.StartDate == "" || e.Date >= f.StartDate) &&
		(f.EndDate == "" || e.Date <= f.EndDate) &&
		(f.Material == "" || e.HasMaterial(f.Material)) &&
		(f.Location == "" || containsFold(e.Location, f.Location))
}

// FilterRooms returns the rooms whose name contains text, ignoring case.
// An empty text keeps every room.
func FilterRooms(rooms []models.ChatRoom, text string) []models.ChatRoom {
	out := make([]models.ChatRoom, 0, len(rooms))
	for _, r := range rooms {
		if text == "" || containsFold(r.Name, text) {
			out = append(out, r)
		}
	}
	return out
}

func matchesText(e models.JournalEntry, q string) bool {
	if q == "" {
		return true
	}
	if containsFold(e.Title, q) || containsFold(e.Description, q) {
		return true
	}
	for _, tag := range e.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
