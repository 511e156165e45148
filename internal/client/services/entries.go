package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/analysis"
	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/query"
	"github.com/dmitrijs2005/archedata/internal/client/repositories/collections"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultTitle    = "Untitled"
	DefaultLocation = "Not specified"
)

// EntryService is the journal entry repository.
//
// Writes, deletes and timeline appends are allowed to the entry's owner or
// an Admin; anything else is common.ErrForbidden. Operations addressing an
// id that does not exist are no-ops.
type EntryService interface {
	Entries(ctx context.Context) ([]models.JournalEntry, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.JournalEntry, error)
	Diary(ctx context.Context, actor *models.User) ([]models.JournalEntry, error)
	PublicEntries(ctx context.Context) ([]models.JournalEntry, error)
	Search(ctx context.Context, f query.Filter) ([]models.JournalEntry, error)

	SaveEntry(ctx context.Context, actor *models.User, entry models.JournalEntry) error
	DeleteEntry(ctx context.Context, actor *models.User, id string) error
	AddEntryUpdate(ctx context.Context, actor *models.User, entryID string, update models.EntryUpdate) error

	NewUpdate(actor *models.User, text string) models.EntryUpdate
	Compose(ctx context.Context, actor *models.User, draft models.JournalEntry, analyze bool) (*models.JournalEntry, error)
}

type entryService struct {
	entries  *collections.Collection[models.JournalEntry]
	analyzer analysis.Analyzer
	logger   logging.Logger
	nowFn    func() time.Time
}

// NewEntryService builds an EntryService. A nil analyzer disables analysis.
func NewEntryService(db *sql.DB, analyzer analysis.Analyzer, logger logging.Logger) EntryService {
	if analyzer == nil {
		analyzer = analysis.Nop{}
	}
	return &entryService{
		entries:  collections.New[models.JournalEntry](db, collections.EntriesKey, logger),
		analyzer: analyzer,
		logger:   logger.With("service", "entries"),
		nowFn:    time.Now,
	}
}

func (s *entryService) Entries(ctx context.Context) ([]models.JournalEntry, error) {
	list, _, err := s.entries.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}
	return list, nil
}

// Get returns the entry if actor may see it. A private entry of someone
// else reads as common.ErrNotFound.
func (s *entryService) Get(ctx context.Context, actor *models.User, id string) (*models.JournalEntry, error) {
	list, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(list, func(e models.JournalEntry) bool { return e.ID == id })
	if i < 0 || !models.CanView(actor, &list[i]) {
		return nil, fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	return &list[i], nil
}

func (s *entryService) Diary(ctx context.Context, actor *models.User) ([]models.JournalEntry, error) {
	if actor == nil {
		return nil, common.ErrNotAuthenticated
	}
	list, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(list, func(e models.JournalEntry) bool { return !e.OwnedBy(actor.ID) }), nil
}

func (s *entryService) PublicEntries(ctx context.Context) ([]models.JournalEntry, error) {
	list, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(list, func(e models.JournalEntry) bool { return !e.IsPublic }), nil
}

// Search runs f over the public entries.
func (s *entryService) Search(ctx context.Context, f query.Filter) ([]models.JournalEntry, error) {
	list, err := s.PublicEntries(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(list, f), nil
}

// SaveEntry replaces the entry with the same id in place, or prepends it.
func (s *entryService) SaveEntry(ctx context.Context, actor *models.User, entry models.JournalEntry) error {
	if actor == nil {
		return common.ErrNotAuthenticated
	}
	if entry.ID == "" {
		return fmt.Errorf("entry id is required: %w", common.ErrValidation)
	}

	err := s.entries.Update(ctx, func(list []models.JournalEntry) ([]models.JournalEntry, error) {
		i := slices.IndexFunc(list, func(e models.JournalEntry) bool { return e.ID == entry.ID })
		if i >= 0 {
			existing := list[i]
			if !models.CanModify(actor, &existing) {
				return nil, common.ErrForbidden
			}
			if !actor.IsAdmin() && entry.UserID != existing.UserID {
				return nil, common.ErrForbidden
			}
			list[i] = entry
			return list, nil
		}

		if !actor.IsAdmin() && (!actor.Role.CanAuthor() || entry.UserID != actor.ID) {
			return nil, common.ErrForbidden
		}
		return append([]models.JournalEntry{entry}, list...), nil
	})
	if err != nil {
		return fmt.Errorf("save entry %s: %w", entry.ID, err)
	}

	s.logger.Info(ctx, "entry saved", "entry_id", entry.ID, "user_id", actor.ID, "public", entry.IsPublic)
	return nil
}

func (s *entryService) DeleteEntry(ctx context.Context, actor *models.User, id string) error {
	if actor == nil {
		return common.ErrNotAuthenticated
	}

	err := s.entries.Update(ctx, func(list []models.JournalEntry) ([]models.JournalEntry, error) {
		i := slices.IndexFunc(list, func(e models.JournalEntry) bool { return e.ID == id })
		if i < 0 {
			return nil, collections.ErrUnchanged
		}
		if !models.CanModify(actor, &list[i]) {
			return nil, common.ErrForbidden
		}
		return slices.Delete(list, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}

	s.logger.Info(ctx, "entry deleted", "entry_id", id, "user_id", actor.ID)
	return nil
}

// AddEntryUpdate appends update to the entry's timeline.
func (s *entryService) AddEntryUpdate(ctx context.Context, actor *models.User, entryID string, update models.EntryUpdate) error {
	if actor == nil {
		return common.ErrNotAuthenticated
	}
	if update.ID == "" {
		update.ID = uuid.NewString()
	}

	err := s.entries.Update(ctx, func(list []models.JournalEntry) ([]models.JournalEntry, error) {
		i := slices.IndexFunc(list, func(e models.JournalEntry) bool { return e.ID == entryID })
		if i < 0 {
			return nil, collections.ErrUnchanged
		}
		if !models.CanModify(actor, &list[i]) {
			return nil, common.ErrForbidden
		}
		if list[i].Updates == nil {
			list[i].Updates = []models.EntryUpdate{}
		}
		list[i].Updates = append(list[i].Updates, update)
		return list, nil
	})
	if err != nil {
		return fmt.Errorf("add update to entry %s: %w", entryID, err)
	}
	return nil
}

func (s *entryService) NewUpdate(actor *models.User, text string) models.EntryUpdate {
	return models.NewEntryUpdate(uuid.NewString(), actor, text, s.nowFn())
}

// Compose fills in what the entry form would, optionally enriches the
// description and tags with the analyzer, and saves the entry. A failed
// analysis never prevents the save.
func (s *entryService) Compose(ctx context.Context, actor *models.User, draft models.JournalEntry, analyze bool) (*models.JournalEntry, error) {
	if actor == nil {
		return nil, common.ErrNotAuthenticated
	}

	e := draft
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.UserID == "" {
		e.UserID = actor.ID
	}
	if e.AuthorName == "" {
		e.AuthorName = actor.Name
	}
	if e.AuthorRole == "" {
		e.AuthorRole = string(actor.Role)
	}
	if strings.TrimSpace(e.Title) == "" {
		e.Title = DefaultTitle
	}
	if strings.TrimSpace(e.Location) == "" {
		e.Location = DefaultLocation
	}
	if e.Date == "" {
		e.Date = s.nowFn().Format(time.DateOnly)
	}
	if len(e.TeamMembers) == 0 {
		e.TeamMembers = []models.TeamMember{{ID: actor.ID, Name: actor.Name, Role: string(actor.Role)}}
	}
	if e.Findings == nil {
		e.Findings = []models.Finding{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Updates == nil {
		e.Updates = []models.EntryUpdate{}
	}

	if analyze && strings.TrimSpace(e.Description) != "" {
		res := s.analyzer.Analyze(ctx, e.Description)
		if res.Fallback {
			s.logger.Warn(ctx, "analysis unavailable, saving notes as written", "entry_id", e.ID)
		} else {
			e.Description = res.Annotate(e.Description)
			e.Tags = res.MergeTags(e.Tags)
		}
	}

	if err := s.SaveEntry(ctx, actor, e); err != nil {
		return nil, err
	}
	return &e, nil
}
