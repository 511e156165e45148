package models

import (
	"fmt"
	"slices"
	"time"
)

// Condition describes the physical state of a finding.
type Condition string

const (
	ConditionIntact     Condition = "Intact"
	ConditionFragmented Condition = "Fragmented"
	ConditionFragile    Condition = "Fragile"
	ConditionRestored   Condition = "Restored"
)

var Conditions = []Condition{ConditionIntact, ConditionFragmented, ConditionFragile, ConditionRestored}

func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	if !slices.Contains(Conditions, c) {
		return "", fmt.Errorf("unknown condition %q", s)
	}
	return c, nil
}

// Finding is one physical object documented within an entry.
type Finding struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Material    string    `json:"material"`
	Condition   Condition `json:"condition"`
}

type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// EntryUpdate is an append-only timeline note.
type EntryUpdate struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
}

// NewEntryUpdate stamps text with the author's display name and now (UTC, RFC 3339).
func NewEntryUpdate(id string, author *User, text string, now time.Time) EntryUpdate {
	name := "Unknown"
	if author != nil && author.Name != "" {
		name = author.Name
	}
	return EntryUpdate{
		ID:         id,
		Date:       now.UTC().Format(time.RFC3339),
		Text:       text,
		AuthorName: name,
	}
}

// JournalEntry is a fieldwork record.
type JournalEntry struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	AuthorName string `json:"authorName"`
	AuthorRole string `json:"authorRole"`

	Title         string  `json:"title"`
	Date          string  `json:"date"`
	DiscoveryTime *string `json:"discoveryTime,omitempty"`

	Location        string  `json:"location"`
	Coordinates     *string `json:"coordinates,omitempty"`
	LocationContext *string `json:"locationContext,omitempty"`

	Material       *string `json:"material,omitempty"`
	Dimensions     *string `json:"dimensions,omitempty"`
	Condition      *string `json:"condition,omitempty"`
	Appearance     *string `json:"appearance,omitempty"`
	FindingContext *string `json:"findingContext,omitempty"`

	// Description is the diary text.
	Description string `json:"description"`

	Findings    []Finding     `json:"findings"`
	TeamMembers []TeamMember  `json:"teamMembers"`
	Tags        []string      `json:"tags"`
	Weather     *string       `json:"weather,omitempty"`
	IsPublic    bool          `json:"isPublic"`
	Updates     []EntryUpdate `json:"updates"`
}

// OwnedBy reports whether userID authored the entry.
func (e *JournalEntry) OwnedBy(userID string) bool {
	return userID != "" && e.UserID == userID
}

// HasMaterial reports whether any finding is made of exactly material.
func (e *JournalEntry) HasMaterial(material string) bool {
	return slices.ContainsFunc(e.Findings, func(f Finding) bool { return f.Material == material })
}
