package models

import (
	"fmt"
	"slices"
)

// Role is a user's access profile.
type Role string

const (
	RoleFieldWorker Role = "FieldWorker"
	RoleSpecialist  Role = "Specialist"
	RoleHeritage    Role = "Heritage"
	RoleStudent     Role = "Student"
	RoleOther       Role = "Other"
	RoleAdmin       Role = "Admin"
)

// Roles lists every role in display order.
var Roles = []Role{RoleFieldWorker, RoleSpecialist, RoleHeritage, RoleStudent, RoleOther, RoleAdmin}

func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// CanAuthor reports whether the role may keep a field diary.
func (r Role) CanAuthor() bool {
	return r.Valid() && r != RoleOther
}

// ParseRole matches s against the known roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User is a directory record.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	// PasswordHash holds an argon2id hash, never the raw secret.
	PasswordHash string  `json:"passwordHash,omitempty"`
	Role         Role    `json:"role"`
	DOB          *string `json:"dob,omitempty"`

	Organization *string `json:"organization,omitempty"`
	Specialty    *string `json:"specialty,omitempty"`
	University   *string `json:"university,omitempty"`

	// Documents are object-storage references to uploaded scans.
	Documents    []string `json:"documents"`
	DocumentType *string  `json:"documentType,omitempty"`

	Avatar *string  `json:"avatar,omitempty"`
	Bio    *string  `json:"bio,omitempty"`
	Works  []string `json:"works"`

	SavedChatIDs []string `json:"savedChatIds"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) HasSavedChat(chatID string) bool {
	return slices.Contains(u.SavedChatIDs, chatID)
}

// ToggleSavedChat flips chatID in the saved set, keeping the order of the
// remaining ids.
func (u *User) ToggleSavedChat(chatID string) {
	if u.HasSavedChat(chatID) {
		u.SavedChatIDs = slices.DeleteFunc(slices.Clone(u.SavedChatIDs), func(id string) bool { return id == chatID })
		return
	}
	u.SavedChatIDs = append(slices.Clone(u.SavedChatIDs), chatID)
}

// Public returns a copy of u without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
