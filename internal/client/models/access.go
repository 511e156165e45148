package models

// CanView reports whether actor may read e. Public entries are readable by
// anyone, including anonymous callers (nil actor).
func CanView(actor *User, e *JournalEntry) bool {
	if e.IsPublic {
		return true
	}
	return CanModify(actor, e)
}

// CanModify reports whether actor may edit, delete or append to e.
func CanModify(actor *User, e *JournalEntry) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || e.OwnedBy(actor.ID)
}
