package query

import (
	"testing"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func sample() []models.JournalEntry {
	return []models.JournalEntry{
		{
			ID:          "e1",
			Title:       "Bronze Axe",
			Date:        "2024-01-10",
			Location:    "Almaty",
			Description: "Found near the river terrace",
			Findings:    []models.Finding{{ID: "f1", Name: "Axe head", Material: "Bronze"}},
			Tags:        []string{"tools", "Bronze Age"},
			IsPublic:    true,
		},
		{
			ID:          "e2",
			Title:       "Clay Pot",
			Date:        "2024-03-05",
			Location:    "Astana",
			Description: "Курган, керамика с орнаментом",
			Findings:    []models.Finding{{ID: "f2", Name: "Pot", Material: "Clay"}},
			Tags:        []string{"ceramics"},
			IsPublic:    true,
		},
	}
}

func ids(entries []models.JournalEntry) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty filter matches all", filter: Filter{}, want: []string{"e1", "e2"}},
		{name: "query in title, case-insensitive", filter: Filter{Query: "axe"}, want: []string{"e1"}},
		{name: "query in tags", filter: Filter{Query: "CERAMICS"}, want: []string{"e2"}},
		{name: "query in description", filter: Filter{Query: "terrace"}, want: []string{"e1"}},
		{name: "cyrillic query folds case", filter: Filter{Query: "КЕРАМИКА"}, want: []string{"e2"}},
		{name: "date range inclusive", filter: Filter{StartDate: "2024-02-01", EndDate: "2024-12-31"}, want: []string{"e2"}},
		{name: "start date equals entry date", filter: Filter{StartDate: "2024-01-10"}, want: []string{"e1", "e2"}},
		{name: "end date equals entry date", filter: Filter{EndDate: "2024-01-10"}, want: []string{"e1"}},
		{name: "material exact", filter: Filter{Material: "Clay"}, want: []string{"e2"}},
		{name: "material is case-sensitive", filter: Filter{Material: "clay"}, want: []string{}},
		{name: "location substring", filter: Filter{Location: "ast"}, want: []string{"e2"}},
		{name: "location any case", filter: Filter{Location: "ALMA"}, want: []string{"e1"}},
		{name: "material bronze", filter: Filter{Material: "Bronze"}, want: []string{"e1"}},
		{name: "all constraints must hold", filter: Filter{Query: "axe", Location: "Astana"}, want: []string{}},
		{name: "no match", filter: Filter{Query: "gold"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(sample(), tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_PreservesOrderAndInput(t *testing.T) {
	in := sample()
	in[0], in[1] = in[1], in[0]

	got := Apply(in, Filter{})
	assert.Equal(t, []string{"e2", "e1"}, ids(got))

	got = Apply(in, Filter{Material: "Bronze"})
	assert.Equal(t, []string{"e1"}, ids(got))
	assert.Len(t, in, 2)
}

func TestApply_NilInput(t *testing.T) {
	got := Apply(nil, Filter{Query: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatches_EntryWithoutFindings(t *testing.T) {
	e := models.JournalEntry{ID: "x", Title: "Survey", Date: "2024-05-01"}
	assert.True(t, Matches(e, Filter{}))
	assert.False(t, Matches(e, Filter{Material: "Bronze"}))
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Location: "x"}.IsZero())
}

func TestFilterRooms(t *testing.T) {
	rooms := []models.ChatRoom{
		{ID: "1", Name: "Археологи Казахстана"},
		{ID: "2", Name: "Реставрация и Консервация"},
		{ID: "3", Name: "Saka studies"},
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty keeps all", "", []string{"1", "2", "3"}},
		{"cyrillic ignores case", "археологи", []string{"1"}},
		{"latin ignores case", "SAKA", []string{"3"}},
		{"inner substring", "и", []string{"1", "2"}},
		{"no match", "bronze", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterRooms(rooms, tc.text)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}

	assert.NotNil(t, FilterRooms(nil, "x"))
}
