package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/query"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/google/uuid"
)

// NewEntry collects a field diary entry and saves it, optionally asking the
// analyzer to enrich the notes first.
func (a *App) NewEntry(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Enter location", a.out)
	if err != nil {
		return err
	}
	coords, err := getSimpleText(a.reader, "Enter coordinates (optional)", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter field notes", a.out)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Enter findings as name;material;condition, one per line")
	lines, err := GetLines(a.reader)
	if err != nil {
		return err
	}
	findings, err := ParseFindings(lines)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Enter tags, comma separated", a.out)
	if err != nil {
		return err
	}
	public, err := YesNo(a.reader, "Publish to the public database?", a.out)
	if err != nil {
		return err
	}
	analyze, err := YesNo(a.reader, "Analyze notes with AI?", a.out)
	if err != nil {
		return err
	}

	draft := models.JournalEntry{
		Title:       title,
		Location:    location,
		Coordinates: optional(coords),
		Description: description,
		Findings:    findings,
		Tags:        SplitList(tags),
		IsPublic:    public,
	}

	e, err := a.entryService.Compose(ctx, u, draft, analyze)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved entry %s\n", e.ID)
	return nil
}

// ParseFindings reads "name;material;condition" lines. Material and
// condition may be omitted; the condition defaults to Intact.
func ParseFindings(lines []string) ([]models.Finding, error) {
	out := make([]models.Finding, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ";")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("finding %q has no name: %w", line, common.ErrValidation)
		}
		f := models.Finding{ID: uuid.NewString(), Name: parts[0], Condition: models.ConditionIntact}
		if len(parts) > 1 {
			f.Material = parts[1]
		}
		if len(parts) > 2 && parts[2] != "" {
			c, err := models.ParseCondition(parts[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %w", err, common.ErrValidation)
			}
			f.Condition = c
		}
		out = append(out, f)
	}
	return out, nil
}

// Diary lists the session user's own entries.
func (a *App) Diary(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	list, err := a.entryService.Diary(ctx, u)
	if err != nil {
		return err
	}
	printEntries(a.out, list)
	return nil
}

// Search prompts for the filter fields and lists the matching public
// entries. Empty answers leave a field unconstrained.
func (a *App) Search(ctx context.Context) error {
	var f query.Filter
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Search text", &f.Query},
		{"From date (YYYY-MM-DD)", &f.StartDate},
		{"To date (YYYY-MM-DD)", &f.EndDate},
		{"Material", &f.Material},
		{"Location", &f.Location},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	list, err := a.entryService.Search(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Found %d entries\n", len(list))
	printEntries(a.out, list)
	return nil
}

// Show prints a single entry visible to the session user.
func (a *App) Show(ctx context.Context, id string) error {
	id, err := a.argOrPrompt(id, "Enter entry id")
	if err != nil {
		return err
	}
	e, err := a.entryService.Get(ctx, a.user, id)
	if err != nil {
		return err
	}
	printEntry(a.out, e)
	return nil
}

// Note appends a timeline update to an entry.
func (a *App) Note(ctx context.Context, id string) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	id, err = a.argOrPrompt(id, "Enter entry id")
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Enter update text", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("update text is required: %w", common.ErrValidation)
	}
	if err := a.entryService.AddEntryUpdate(ctx, u, id, a.entryService.NewUpdate(u, text)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Update added")
	return nil
}

// Delete removes an entry after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	id, err = a.argOrPrompt(id, "Enter entry id to delete")
	if err != nil {
		return err
	}
	ok, err := YesNo(a.reader, "Delete entry "+id+"?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.entryService.DeleteEntry(ctx, u, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// Visibility flips an entry between public and private.
func (a *App) Visibility(ctx context.Context, id string) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	id, err = a.argOrPrompt(id, "Enter entry id")
	if err != nil {
		return err
	}
	e, err := a.entryService.Get(ctx, u, id)
	if err != nil {
		return err
	}
	e.IsPublic = !e.IsPublic
	if err := a.entryService.SaveEntry(ctx, u, *e); err != nil {
		return err
	}
	if e.IsPublic {
		fmt.Fprintln(a.out, "Entry is now public")
	} else {
		fmt.Fprintln(a.out, "Entry is now private")
	}
	return nil
}
