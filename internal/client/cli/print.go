package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/archedata/internal/client/models"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func displayName(u *models.User) string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Nickname != "":
		return u.Nickname
	default:
		return u.Email
	}
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s (@%s) <%s>\n", u.Name, u.Nickname, u.Email)
	fmt.Fprintf(w, "Role: %s\n", u.Role)
	if u.Organization != nil {
		fmt.Fprintf(w, "Organization: %s\n", *u.Organization)
	}
	if u.Specialty != nil {
		fmt.Fprintf(w, "Specialty: %s\n", *u.Specialty)
	}
	if u.University != nil {
		fmt.Fprintf(w, "University: %s\n", *u.University)
	}
	if u.Bio != nil {
		fmt.Fprintf(w, "Bio: %s\n", *u.Bio)
	}
	if len(u.Works) > 0 {
		fmt.Fprintf(w, "Works: %s\n", strings.Join(u.Works, "; "))
	}
	fmt.Fprintf(w, "Documents: %d, saved chats: %d\n", len(u.Documents), len(u.SavedChatIDs))
}

func printEntryLine(w io.Writer, e models.JournalEntry) {
	visibility := "private"
	if e.IsPublic {
		visibility = "public"
	}
	fmt.Fprintf(w, "%s  %s  %s  [%s] by %s (%s)\n", e.ID, e.Date, e.Title, e.Location, e.AuthorName, visibility)
}

func printEntries(w io.Writer, list []models.JournalEntry) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	for _, e := range list {
		printEntryLine(w, e)
	}
}

func printEntry(w io.Writer, e *models.JournalEntry) {
	fmt.Fprintf(w, "%s\n%s, %s\n", e.Title, e.Date, e.Location)
	if e.Coordinates != nil {
		fmt.Fprintf(w, "Coordinates: %s\n", *e.Coordinates)
	}
	fmt.Fprintf(w, "Author: %s (%s)\n", e.AuthorName, e.AuthorRole)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", e.Description)

	if len(e.Findings) > 0 {
		fmt.Fprintln(w, "\nFindings:")
		for _, f := range e.Findings {
			fmt.Fprintf(w, "  - %s: %s, %s\n", f.Name, f.Material, f.Condition)
		}
	}
	if len(e.TeamMembers) > 0 {
		fmt.Fprintln(w, "\nTeam:")
		for _, m := range e.TeamMembers {
			fmt.Fprintf(w, "  - %s (%s)\n", m.Name, m.Role)
		}
	}
	if len(e.Updates) > 0 {
		fmt.Fprintln(w, "\nUpdates:")
		for _, u := range e.Updates {
			fmt.Fprintf(w, "  [%s] %s: %s\n", u.Date, u.AuthorName, u.Text)
		}
	}
}

func printRooms(w io.Writer, rooms []models.ChatRoom, saved func(id string) bool) {
	if len(rooms) == 0 {
		fmt.Fprintln(w, "No chats.")
		return
	}
	for _, r := range rooms {
		mark := " "
		if saved != nil && saved(r.ID) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s  %s (%d members) %s/%s/%s\n", mark, r.ID, r.Name, r.Members,
			r.Tags.Country, r.Tags.Language, r.Tags.Specialization)
	}
}

func printMessage(w io.Writer, m models.ChatMessage) {
	fmt.Fprintf(w, "#%d %s %s: %s\n", m.Seq, m.Timestamp, m.UserName, m.Text)
}
